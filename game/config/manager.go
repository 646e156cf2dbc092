package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/theduyngx/pacman-torusverse/game/engine"
	"github.com/theduyngx/pacman-torusverse/game/grid"
	"github.com/theduyngx/pacman-torusverse/game/levelcheck"
	"github.com/theduyngx/pacman-torusverse/game/service"
)

var (
	ErrLevelNotFound     = errors.New("level not found")
	ErrInvalidLevel      = errors.New("invalid level")
	ErrInvalidProperties = errors.New("invalid properties")
)

// Manager handles level loading and caching
type Manager struct {
	levelDir     string
	defaultLevel *grid.Level
	levels       map[string]*grid.Level
	props        engine.Properties
	mu           sync.RWMutex
}

// NewManager creates a new level manager using default game properties
func NewManager(levelDir string) (*Manager, error) {
	return NewManagerWithProperties(levelDir, engine.DefaultProperties())
}

// NewManagerWithProperties creates a new level manager
func NewManagerWithProperties(levelDir string, props engine.Properties) (*Manager, error) {
	info, err := os.Stat(levelDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("level directory does not exist: %s", levelDir)
	}

	m := &Manager{
		levelDir: levelDir,
		levels:   make(map[string]*grid.Level),
		props:    props,
	}

	if err := m.loadDefaultLevel(); err != nil {
		return nil, fmt.Errorf("failed to load default level: %w", err)
	}

	return m, nil
}

// LevelID strips the directory and extension off a level file name
func LevelID(name string) string {
	name = filepath.Base(name)
	if strings.EqualFold(filepath.Ext(name), levelcheck.LevelFileExt) {
		name = name[:len(name)-len(levelcheck.LevelFileExt)]
	}
	return name
}

// LevelDir returns the directory levels are read from
func (m *Manager) LevelDir() string {
	return m.levelDir
}

// Properties returns the game properties sessions are created with
func (m *Manager) Properties() engine.Properties {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.props
}

// SetProperties replaces the game properties for new sessions
func (m *Manager) SetProperties(props engine.Properties) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.props = props
}

// LoadLevel loads a level by name
func (m *Manager) LoadLevel(name string) (*grid.Level, error) {
	id := LevelID(name)
	if id == "" || id == "." {
		return nil, ErrLevelNotFound
	}

	m.mu.RLock()
	if lv, exists := m.levels[id]; exists {
		m.mu.RUnlock()
		return lv, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if lv, exists := m.levels[id]; exists {
		return lv, nil
	}

	lv, err := m.readLevel(id)
	if err != nil {
		return nil, err
	}
	m.levels[id] = lv
	return lv, nil
}

func (m *Manager) readLevel(id string) (*grid.Level, error) {
	path := filepath.Join(m.levelDir, id+levelcheck.LevelFileExt)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
		}
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}

	lv, err := grid.DecodeLevel(id, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	return lv, nil
}

// levelFiles lists the level file names of the directory, sorted
func (m *Manager) levelFiles() ([]string, error) {
	entries, err := os.ReadDir(m.levelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), levelcheck.LevelFileExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListLevels returns information about all available levels. Files that do
// not parse are skipped.
func (m *Manager) ListLevels() ([]*service.LevelInfo, error) {
	names, err := m.levelFiles()
	if err != nil {
		return nil, err
	}

	var levels []*service.LevelInfo
	for _, name := range names {
		lv, err := m.LoadLevel(name)
		if err != nil {
			continue
		}

		report := levelcheck.CheckLevel(lv)
		info := &service.LevelInfo{
			Filename:    name,
			LevelID:     LevelID(name),
			Width:       lv.Size.Width,
			Height:      lv.Size.Height,
			Valid:       report.Valid,
			Diagnostics: report.Diagnostics,
		}
		if n, ok := levelcheck.LevelNumber(name); ok {
			info.Number = n
		}
		lv.Items.Each(func(_ grid.Location, item grid.Item) {
			switch item.Kind {
			case grid.Pill:
				info.Pills++
			case grid.Gold:
				info.Gold++
			}
		})
		levels = append(levels, info)
	}

	return levels, nil
}

// GetDefault returns the default level
func (m *Manager) GetDefault() *grid.Level {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLevel
}

// SetDefault sets the default level by name
func (m *Manager) SetDefault(name string) error {
	lv, err := m.LoadLevel(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLevel = lv
	return nil
}

// RefreshCache drops every cached level and reloads the directory. Files
// that fail to load are reported together.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.levels = make(map[string]*grid.Level)
	m.mu.Unlock()

	names, err := m.levelFiles()
	if err != nil {
		return err
	}

	var errs error
	for _, name := range names {
		if _, err := m.LoadLevel(name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	log.Printf("Level cache refreshed: %d files, %d failed", len(names), len(multierr.Errors(errs)))

	if err := m.loadDefaultLevel(); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// loadDefaultLevel picks the first playable level, then the first level
// that loads, then the built-in level
func (m *Manager) loadDefaultLevel() error {
	var lv *grid.Level

	files, _, err := levelcheck.PlayableFiles(m.levelDir)
	if err != nil {
		return err
	}
	for _, name := range files {
		candidate, err := m.LoadLevel(name)
		if err == nil && engine.ValidateLevel(candidate) == nil {
			lv = candidate
			break
		}
	}

	if lv == nil {
		names, err := m.levelFiles()
		if err != nil {
			return err
		}
		for _, name := range names {
			candidate, err := m.LoadLevel(name)
			if err == nil && engine.ValidateLevel(candidate) == nil {
				lv = candidate
				break
			}
		}
	}

	if lv == nil {
		lv = createMinimalLevel()
	}

	m.mu.Lock()
	m.defaultLevel = lv
	m.mu.Unlock()
	return nil
}

// SaveLevel writes a level to disk
func (m *Manager) SaveLevel(name string, lv *grid.Level) error {
	id := LevelID(name)
	if id == "" || id == "." {
		return fmt.Errorf("%w: empty level name", ErrInvalidLevel)
	}
	if err := engine.ValidateLevel(lv); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}

	var buf bytes.Buffer
	if err := grid.EncodeLevel(&buf, lv); err != nil {
		return fmt.Errorf("failed to encode level: %w", err)
	}

	path := filepath.Join(m.levelDir, id+levelcheck.LevelFileExt)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	saved := lv.Clone()
	saved.Name = id

	m.mu.Lock()
	m.levels[id] = saved
	m.mu.Unlock()

	return nil
}

// createMinimalLevel creates a small playable level
func createMinimalLevel() *grid.Level {
	lv, err := grid.ParseRows("default", []string{
		"#####",
		"#P..#",
		"#.#.#",
		"#..$#",
		"#####",
	})
	if err != nil {
		panic(err)
	}
	return lv
}
