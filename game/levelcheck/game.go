package levelcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/theduyngx/pacman-torusverse/game/grid"
)

// LevelFileExt is the extension of level files inside a game folder
const LevelFileExt = ".xml"

// GameReport is the outcome of checking a game folder
type GameReport struct {
	Game        string    `json:"game"`
	Valid       bool      `json:"valid"`
	Files       []string  `json:"files"`
	Levels      []*Report `json:"levels"`
	Diagnostics []string  `json:"diagnostics"`
}

// LevelNumber returns the number a level file name starts with
func LevelNumber(name string) (int, bool) {
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(name[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// PlayableFiles groups the level files in dir by level number and returns
// them in play order, along with the folder diagnostics. The file list is nil
// when the folder is not playable.
func PlayableFiles(dir string) ([]string, []string, error) {
	game := filepath.Base(filepath.Clean(dir))
	noMaps := fmt.Sprintf("[Game %s - no maps found]", game)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, []string{noMaps}, nil
		}
		// a regular file is not a game folder
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return nil, []string{noMaps}, nil
		}
		return nil, nil, fmt.Errorf("failed to read game folder %s: %w", dir, err)
	}

	tally := make(map[int][]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), LevelFileExt) {
			continue
		}
		if n, ok := LevelNumber(name); ok {
			tally[n] = append(tally[n], name)
		}
	}
	if len(tally) == 0 {
		return nil, []string{noMaps}, nil
	}

	numbers := make([]int, 0, len(tally))
	for n := range tally {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	var diagnostics []string
	files := make([]string, 0, len(numbers))
	for _, n := range numbers {
		names := tally[n]
		if len(names) > 1 {
			sort.Strings(names)
			diagnostics = append(diagnostics,
				fmt.Sprintf("[Game %s - multiple maps at same level: %s]", game, strings.Join(names, "; ")))
			continue
		}
		files = append(files, names[0])
	}
	if len(diagnostics) > 0 {
		return nil, diagnostics, nil
	}
	return files, nil, nil
}

// CheckGame checks a game folder and then every level in it. Levels that
// fail to parse are returned as errors and make the game invalid.
func (c *Checker) CheckGame(dir string) (*GameReport, error) {
	report := &GameReport{Game: filepath.Base(filepath.Clean(dir)), Diagnostics: []string{}}

	files, diagnostics, err := PlayableFiles(dir)
	if err != nil {
		return nil, err
	}
	for _, d := range diagnostics {
		report.Diagnostics = append(report.Diagnostics, d)
		c.reporter.Report(d)
	}
	if files == nil {
		return report, nil
	}
	report.Files = files

	report.Valid = true
	var errs error
	for _, name := range files {
		lv, err := LoadLevelFile(filepath.Join(dir, name))
		if err != nil {
			errs = multierr.Append(errs, err)
			report.Valid = false
			continue
		}
		lr := c.CheckLevel(lv)
		report.Levels = append(report.Levels, lr)
		report.Valid = report.Valid && lr.Valid
	}
	return report, errs
}

// LoadLevelFile decodes a level file named after its base name
func LoadLevelFile(path string) (*grid.Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", path, err)
	}
	defer f.Close()
	return grid.DecodeLevel(filepath.Base(path), f)
}
