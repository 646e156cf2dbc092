package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/theduyngx/pacman-torusverse/game/engine"
)

// Property keys
const (
	KeySeed    = "seed"
	KeyVersion = "version"
	KeyAuto    = "PacMan.isAuto"
)

// LoadProperties reads a properties file. Keys it does not set keep their
// default values.
func LoadProperties(path string) (engine.Properties, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return engine.Properties{}, fmt.Errorf("failed to read properties %s: %w", path, err)
	}
	return ParseProperties(values)
}

// ReadProperties parses properties from r
func ReadProperties(r io.Reader) (engine.Properties, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return engine.Properties{}, fmt.Errorf("failed to parse properties: %w", err)
	}
	return ParseProperties(values)
}

// ParseProperties converts raw key/value pairs into game properties
func ParseProperties(values map[string]string) (engine.Properties, error) {
	props := engine.DefaultProperties()

	if raw, ok := values[KeySeed]; ok && strings.TrimSpace(raw) != "" {
		seed, err := cast.ToInt64E(strings.TrimSpace(raw))
		if err != nil {
			return props, fmt.Errorf("%w: %s: %v", ErrInvalidProperties, KeySeed, err)
		}
		props.Seed = seed
	}

	if raw, ok := values[KeyVersion]; ok {
		switch v := engine.Version(strings.ToLower(strings.TrimSpace(raw))); v {
		case "":
		case engine.VersionSimple, engine.VersionMultiverse:
			props.Version = v
		default:
			return props, fmt.Errorf("%w: %s: unknown version %q", ErrInvalidProperties, KeyVersion, raw)
		}
	}

	if raw, ok := values[KeyAuto]; ok && strings.TrimSpace(raw) != "" {
		auto, err := cast.ToBoolE(strings.TrimSpace(raw))
		if err != nil {
			return props, fmt.Errorf("%w: %s: %v", ErrInvalidProperties, KeyAuto, err)
		}
		props.PacManAuto = auto
	}

	return props, nil
}
