// Package defs loads fighter type definitions from YAML. A default library
// ships embedded in the binary; servers may override it with a file on disk.
package defs

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed fighters.yaml
var defaultFighters []byte

// FighterDef describes one fighter type.
type FighterDef struct {
	Name           string  `yaml:"name"`
	MaxHealth      float64 `yaml:"max_health"`
	Damage         float64 `yaml:"damage"`
	Range          float64 `yaml:"range"`
	Cooldown       float64 `yaml:"cooldown"`
	MoveSpeed      float64 `yaml:"move_speed"`
	RegenPerSecond float64 `yaml:"regen_per_second"`
	Tint           string  `yaml:"tint"` // "#rrggbb"
}

// Library maps fighter type name to its definition.
type Library map[string]FighterDef

type fileFormat struct {
	Fighters []FighterDef `yaml:"fighters"`
}

// Parse builds a Library from YAML bytes and validates every entry.
func Parse(data []byte) (Library, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("defs: unmarshal fighters: %w", err)
	}
	if len(f.Fighters) == 0 {
		return nil, fmt.Errorf("defs: no fighter definitions found")
	}

	lib := make(Library, len(f.Fighters))
	for _, def := range f.Fighters {
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("defs: fighter %q: %w", def.Name, err)
		}
		if _, dup := lib[def.Name]; dup {
			return nil, fmt.Errorf("defs: duplicate fighter type %q", def.Name)
		}
		lib[def.Name] = def
	}
	return lib, nil
}

// LoadFile parses a fighter library from a YAML file on disk.
func LoadFile(path string) (Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("defs: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded fighter library. The embedded file is part of
// the build, so a parse failure is a programmer error.
func Default() Library {
	lib, err := Parse(defaultFighters)
	if err != nil {
		panic("defs: embedded fighters.yaml is invalid: " + err.Error())
	}
	return lib
}

func validate(def FighterDef) error {
	switch {
	case def.Name == "":
		return fmt.Errorf("name is required")
	case def.MaxHealth <= 0:
		return fmt.Errorf("max_health must be positive, got %v", def.MaxHealth)
	case def.Damage <= 0:
		return fmt.Errorf("damage must be positive, got %v", def.Damage)
	case def.Range <= 0:
		return fmt.Errorf("range must be positive, got %v", def.Range)
	case def.Cooldown < 0:
		return fmt.Errorf("cooldown must be non-negative, got %v", def.Cooldown)
	case def.MoveSpeed < 0:
		return fmt.Errorf("move_speed must be non-negative, got %v", def.MoveSpeed)
	case def.RegenPerSecond < 0:
		return fmt.Errorf("regen_per_second must be non-negative, got %v", def.RegenPerSecond)
	}
	if _, _, _, err := ParseTint(def.Tint); err != nil {
		return err
	}
	return nil
}

// ParseTint converts a "#rrggbb" hex string to RGB components. An empty
// string means white.
func ParseTint(s string) (r, g, b uint8, err error) {
	if s == "" {
		return 0xff, 0xff, 0xff, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("tint %q must look like #rrggbb", s)
	}
	var rv, gv, bv int
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, fmt.Errorf("tint %q must look like #rrggbb", s)
	}
	return uint8(rv), uint8(gv), uint8(bv), nil
}
