package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/urfave/cli/v3"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

func TestMain(m *testing.M) {
	color.Disable()
	os.Exit(m.Run())
}

// writeLevel encodes text rows as a level file in dir
func writeLevel(t *testing.T, dir, name string, rows []string) string {
	t.Helper()
	lv, err := grid.ParseRows(name, rows)
	if err != nil {
		t.Fatalf("ParseRows failed: %v", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create level file: %v", err)
	}
	defer f.Close()
	if err := grid.EncodeLevel(f, lv); err != nil {
		t.Fatalf("EncodeLevel failed: %v", err)
	}
	return path
}

var (
	okRows      = []string{"#####", "#P.$#", "#####"}
	noStartRows = []string{"#####", "#..$#", "#####"}
	sealedRows  = []string{"#######", "#P.#.$#", "#######"}
)

func TestCheckLevelFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		rows     []string
		want     bool
		contains []string
	}{
		{
			name:     "1_ok.xml",
			rows:     okRows,
			want:     true,
			contains: []string{"VALID 1_ok.xml", "5x3, 1 pills, 1 gold"},
		},
		{
			name: "2_nostart.xml",
			rows: noStartRows,
			want: false,
			contains: []string{
				"INVALID 2_nostart.xml (3 problems)",
				"[Level 2_nostart.xml – no start for PacMan]",
				"[Level 2_nostart.xml – Gold not accessible: (3,1)]",
			},
		},
		{
			name: "3_sealed.xml",
			rows: sealedRows,
			want: false,
			contains: []string{
				"[Level 3_sealed.xml – Gold not accessible: (5,1)]",
				"[Level 3_sealed.xml – Pill not accessible: (4,1)]",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			v := &validator{out: &out}
			path := writeLevel(t, dir, tt.name, tt.rows)

			if got := v.checkLevelFile(path); got != tt.want {
				t.Errorf("checkLevelFile() = %v, want %v\n%s", got, tt.want, out.String())
			}
			if v.failed == tt.want {
				t.Errorf("failed = %v for a level that passed=%v", v.failed, tt.want)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("Expected %q in output:\n%s", s, out.String())
				}
			}
		})
	}
}

func TestCheckLevelFile_Unreadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1_broken.xml")
	os.WriteFile(path, []byte("<level><size><width>2</width><height>1</height></size><row><cell>LavaTile</cell></row></level>"), 0644)

	var out bytes.Buffer
	v := &validator{out: &out}
	if v.checkLevelFile(path) {
		t.Error("Expected unreadable level to fail")
	}
	if !strings.Contains(out.String(), "UNREADABLE 1_broken.xml") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestCheckGameDir(t *testing.T) {
	t.Run("duplicate level numbers", func(t *testing.T) {
		dir := t.TempDir()
		writeLevel(t, dir, "1_a.xml", okRows)
		writeLevel(t, dir, "1_b.xml", okRows)

		var out bytes.Buffer
		v := &validator{out: &out}
		if err := v.checkGameDir(dir); err != nil {
			t.Fatalf("checkGameDir failed: %v", err)
		}
		if !v.failed {
			t.Error("Expected game with duplicate levels to fail")
		}
		if !strings.Contains(out.String(), "multiple maps at same level: 1_a.xml; 1_b.xml") {
			t.Errorf("Unexpected output:\n%s", out.String())
		}
	})

	t.Run("playable", func(t *testing.T) {
		dir := t.TempDir()
		writeLevel(t, dir, "1_a.xml", okRows)
		writeLevel(t, dir, "2_b.xml", okRows)

		var out bytes.Buffer
		v := &validator{out: &out}
		if err := v.checkGameDir(dir); err != nil {
			t.Fatalf("checkGameDir failed: %v", err)
		}
		if v.failed {
			t.Errorf("Expected playable game:\n%s", out.String())
		}
		if !strings.Contains(out.String(), "is playable: 1_a.xml, 2_b.xml") {
			t.Errorf("Unexpected output:\n%s", out.String())
		}
	})

	t.Run("invalid level inside", func(t *testing.T) {
		dir := t.TempDir()
		writeLevel(t, dir, "1_a.xml", okRows)
		writeLevel(t, dir, "2_b.xml", noStartRows)

		var out bytes.Buffer
		v := &validator{out: &out}
		v.checkGameDir(dir)
		if !v.failed {
			t.Error("Expected game with an invalid level to fail")
		}
		if !strings.Contains(out.String(), "no start for PacMan") {
			t.Errorf("Expected level diagnostics in output:\n%s", out.String())
		}
	})

	t.Run("empty folder", func(t *testing.T) {
		dir := t.TempDir()
		var out bytes.Buffer
		v := &validator{out: &out}
		v.checkGameDir(dir)
		if !v.failed || !strings.Contains(out.String(), "no maps found") {
			t.Errorf("Expected no maps diagnostic:\n%s", out.String())
		}
	})
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestApp(t *testing.T) {
	dir := t.TempDir()
	ok := writeLevel(t, dir, "1_ok.xml", okRows)
	bad := writeLevel(t, dir, "2_bad.xml", noStartRows)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"valid level", []string{"level", ok}, 0},
		{"one invalid level", []string{"level", ok, bad}, 1},
		{"no level files", []string{"level"}, 2},
		{"invalid game", []string{"game", dir}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"validate", "--no-color"}, tt.args...)
			err := newApp(&out).Run(context.Background(), args)
			if got := exitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (err %v)\n%s", got, tt.code, err, out.String())
			}
		})
	}
}

func TestApp_BundledLevels(t *testing.T) {
	if _, err := os.Stat("../levels"); os.IsNotExist(err) {
		t.Skip("Skipping test - levels directory not found")
	}

	var out bytes.Buffer
	err := newApp(&out).Run(context.Background(), []string{"validate", "--no-color", "game", "../levels"})
	if err != nil {
		t.Errorf("Bundled levels should validate: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "All checks passed") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}
