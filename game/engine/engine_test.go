package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

func mustLevel(t *testing.T, bounded bool, rows ...string) *grid.Level {
	t.Helper()
	lv, err := grid.ParseRows("test", rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	lv.Bounded = bounded
	return lv
}

func mustEngine(t *testing.T, lv *grid.Level, props Properties) *GameEngine {
	t.Helper()
	e, err := NewEngine(lv, props)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return e
}

func at(x, y int) grid.Location {
	return grid.Location{X: x, Y: y}
}

func TestNewEngineRejectsUnplayableLevels(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"no start", []string{" .$"}},
		{"two starts", []string{"P.$P"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(mustLevel(t, false, tt.rows...), DefaultProperties())
			if !errors.Is(err, ErrUnplayableLevel) {
				t.Errorf("expected ErrUnplayableLevel, got %v", err)
			}
		})
	}
	if _, err := NewEngine(nil, DefaultProperties()); !errors.Is(err, ErrUnplayableLevel) {
		t.Errorf("nil level: expected ErrUnplayableLevel, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P.$*", "#T  "), DefaultProperties())
	s := e.GetState()

	if s.PacLocation != at(0, 0) || s.Status != StatusPlaying {
		t.Errorf("pac=%v status=%s", s.PacLocation, s.Status)
	}
	if s.Remaining != 2 || len(s.Items) != 3 {
		t.Errorf("remaining=%d items=%d; want 2 and 3", s.Remaining, len(s.Items))
	}
	if len(s.Monsters) != 1 || s.Monsters[0].Kind != grid.Troll {
		t.Errorf("monsters = %+v", s.Monsters)
	}
	want := []string{"P.$*", "#T  "}
	for i, row := range want {
		if s.Board[i] != row {
			t.Errorf("board row %d = %q, want %q", i, s.Board[i], row)
		}
	}
}

func TestMoveCollectsAndWins(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P.$"), DefaultProperties())

	if !e.Move("right") {
		t.Fatal("first move should succeed")
	}
	if e.GetScore() != grid.PillScore {
		t.Errorf("score = %d, want %d", e.GetScore(), grid.PillScore)
	}
	if e.IsGameOver() {
		t.Fatal("game should continue with gold left")
	}

	e.Move("right")
	if !e.IsVictory() {
		t.Errorf("expected victory, status %s", e.GetState().Status)
	}
	if e.GetScore() != grid.PillScore+grid.GoldScore {
		t.Errorf("score = %d", e.GetScore())
	}
	if e.Move("left") {
		t.Error("moves after the game ends should fail")
	}
}

func TestMoveBlockedByWall(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P#.$"), DefaultProperties())
	if e.Move("right") {
		t.Error("move into a wall should fail")
	}
	if e.GetPacLocation() != at(0, 0) {
		t.Errorf("pacman moved to %v", e.GetPacLocation())
	}
	last := e.GetLastMove()
	if last == nil || last.Success {
		t.Errorf("last move = %+v, want a failed entry", last)
	}
	if e.CanMove("right") {
		t.Error("CanMove should report the wall")
	}
}

func TestMoveWrapsAroundEdge(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P .$"), DefaultProperties())
	e.Move("left")
	if e.GetPacLocation() != at(3, 0) {
		t.Errorf("pacman at %v, want (3,0)", e.GetPacLocation())
	}

	bounded := mustEngine(t, mustLevel(t, true, "P .$"), DefaultProperties())
	if bounded.Move("left") {
		t.Error("bounded level should block the west edge")
	}
}

func TestMoveUnknownDirection(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P.$"), DefaultProperties())
	if e.Move("diagonal") {
		t.Error("unknown direction should fail")
	}
	if e.GetState().Tick != 0 {
		t.Error("unknown direction should not use up a tick")
	}
}

func TestPortalTeleports(t *testing.T) {
	e := mustEngine(t, mustLevel(t, true, "PW  W.$"), DefaultProperties())
	e.Move("right")
	if e.GetPacLocation() != at(4, 0) {
		t.Fatalf("pacman at %v, want (4,0) after the portal", e.GetPacLocation())
	}
	res := e.LastTick()
	found := false
	for _, ev := range res.Events {
		if ev.Type == EventTeleport {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a teleport event in %+v", res.Events)
	}
}

func TestGetPossibleMoves(t *testing.T) {
	e := mustEngine(t, mustLevel(t, true,
		"#.#",
		"$P ",
		"###",
	), DefaultProperties())
	moves := e.GetPossibleMoves()
	want := map[string]bool{"up": true, "left": true, "right": true}
	if len(moves) != len(want) {
		t.Fatalf("moves = %v", moves)
	}
	for _, m := range moves {
		if !want[m] {
			t.Errorf("unexpected move %s", m)
		}
	}
}

func TestAutoPlayWins(t *testing.T) {
	lv := mustLevel(t, false,
		"#######",
		"#P . .#",
		"# ### #",
		"#$   .#",
		"#######",
	)
	e := mustEngine(t, lv, Properties{Seed: 1, PacManAuto: true})
	e.Run(100)
	if !e.IsVictory() {
		t.Fatalf("auto play did not win: %s\n%v", e.GetState().Message, e.GetState().Board)
	}
	if e.GetScore() != 3*grid.PillScore+grid.GoldScore {
		t.Errorf("score = %d", e.GetScore())
	}
	for _, m := range e.GetMoveHistory() {
		if m.Action != "auto" || !m.Success {
			t.Errorf("unexpected history entry %+v", m)
		}
	}
}

func TestAutoPlayStopsWhenNothingReachable(t *testing.T) {
	lv := mustLevel(t, true, "P #.$")
	e := mustEngine(t, lv, Properties{PacManAuto: true})
	res := e.Step()
	if res.Moved {
		t.Error("pacman should not move without a reachable goal")
	}
	if e.GetPacLocation() != at(0, 0) {
		t.Errorf("pacman at %v", e.GetPacLocation())
	}
}

func TestStepWithoutAutoWaits(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P.$"), DefaultProperties())
	res := e.Step()
	if res.Moved || e.GetPacLocation() != at(0, 0) {
		t.Errorf("manual pacman should wait, got %+v", res)
	}
	if e.GetState().Tick != 1 {
		t.Errorf("tick = %d, want 1", e.GetState().Tick)
	}
}

func TestPlanningDoesNotChangeState(t *testing.T) {
	e := mustEngine(t, mustLevel(t, true,
		"P  . ",
		" ##  ",
		"$    ",
	), DefaultProperties())
	before, _ := json.Marshal(e.GetState())

	// the gold two cells down is nearer than the pill three cells across
	if next := e.PlanNextGoal(); len(next) != 2 || next[1] != at(0, 2) {
		t.Errorf("PlanNextGoal = %v", next)
	}
	if all := e.PlanCollectAll(); len(all) == 0 {
		t.Error("PlanCollectAll found nothing")
	}
	if route := e.PlanRoute(at(3, 0)); len(route) != 3 {
		t.Errorf("PlanRoute = %v", route)
	}

	after, _ := json.Marshal(e.GetState())
	if string(before) != string(after) {
		t.Error("planning mutated the game state")
	}
}

func TestResetKeepsHistory(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "P..$"), DefaultProperties())
	e.Move("right")
	e.Move("right")
	s := e.Reset()

	if s.PacLocation != at(0, 0) || s.Score != 0 || s.Remaining != 3 {
		t.Errorf("reset state = %+v", s)
	}
	if s.TotalMoves != 2 || len(s.MoveHistory) != 2 {
		t.Errorf("cumulative history lost: total=%d len=%d", s.TotalMoves, len(s.MoveHistory))
	}
	if s.CurrentMovesCount != 0 || len(s.CurrentMoves) != 0 {
		t.Errorf("current segment not cleared: %d", s.CurrentMovesCount)
	}
}

func TestSetStateRoundTrip(t *testing.T) {
	lv := mustLevel(t, false, "P..$", "  T ")
	e := mustEngine(t, lv, DefaultProperties())
	e.Move("right")

	data, err := json.Marshal(e.GetState())
	if err != nil {
		t.Fatal(err)
	}
	var restored GameState
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatal(err)
	}

	other := mustEngine(t, lv, DefaultProperties())
	if err := other.SetState(&restored); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if other.GetScore() != e.GetScore() || other.GetPacLocation() != e.GetPacLocation() {
		t.Errorf("restored score=%d pac=%v", other.GetScore(), other.GetPacLocation())
	}
	if other.GetState().Remaining != e.GetState().Remaining {
		t.Errorf("restored remaining = %d", other.GetState().Remaining)
	}

	if err := other.SetState(nil); err == nil {
		t.Error("SetState(nil) should fail")
	}
	if err := other.SetState(&GameState{Width: 9, Height: 9}); err == nil {
		t.Error("SetState with the wrong board size should fail")
	}
}

func TestNearestItemAndCounts(t *testing.T) {
	e := mustEngine(t, mustLevel(t, false, "$ P  * $ "), DefaultProperties())

	loc, dist, ok := e.NearestItem()
	if !ok || loc != at(0, 0) || dist != 2 {
		t.Errorf("NearestItem() = %v, %d, %v; want (0,0), 2, true", loc, dist, ok)
	}
	if n := e.CountItems(grid.Gold); n != 2 {
		t.Errorf("CountItems(Gold) = %d, want 2", n)
	}
	if n := e.CountItems(grid.Ice); n != 1 {
		t.Errorf("CountItems(Ice) = %d, want 1", n)
	}

	e.Move("left")
	e.Move("left")
	if n := e.CountItems(grid.Gold); n != 1 {
		t.Errorf("after eating, CountItems(Gold) = %d, want 1", n)
	}
	loc, dist, ok = e.NearestItem()
	if !ok || loc != at(7, 0) || dist != 2 {
		t.Errorf("NearestItem() = %v, %d, %v; want (7,0), 2, true", loc, dist, ok)
	}
}
