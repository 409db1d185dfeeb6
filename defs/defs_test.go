package defs

import (
	"strings"
	"testing"
)

const validYAML = `
fighters:
  - name: brawler
    max_health: 100
    damage: 20
    range: 48
    cooldown: 1.5
    move_speed: 120
    tint: "#e04040"
  - name: tank
    max_health: 200
    damage: 12
    range: 40
    cooldown: 2.0
    move_speed: 80
    regen_per_second: 2
`

func TestParse(t *testing.T) {
	lib, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(lib) != 2 {
		t.Fatalf("library size = %d, want 2", len(lib))
	}

	brawler := lib["brawler"]
	if brawler.MaxHealth != 100 || brawler.Damage != 20 || brawler.Range != 48 || brawler.Cooldown != 1.5 {
		t.Errorf("brawler = %+v, want 100hp/20dmg/48rng/1.5cd", brawler)
	}
	if lib["tank"].RegenPerSecond != 2 {
		t.Errorf("tank regen = %v, want 2", lib["tank"].RegenPerSecond)
	}
}

func TestParseRejectsBadDefs(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			"missing name",
			"fighters:\n  - max_health: 100\n    damage: 20\n    range: 48\n",
			"name is required",
		},
		{
			"zero health",
			"fighters:\n  - name: x\n    max_health: 0\n    damage: 20\n    range: 48\n",
			"max_health",
		},
		{
			"negative damage",
			"fighters:\n  - name: x\n    max_health: 100\n    damage: -5\n    range: 48\n",
			"damage",
		},
		{
			"zero range",
			"fighters:\n  - name: x\n    max_health: 100\n    damage: 20\n    range: 0\n",
			"range",
		},
		{
			"negative cooldown",
			"fighters:\n  - name: x\n    max_health: 100\n    damage: 20\n    range: 48\n    cooldown: -1\n",
			"cooldown",
		},
		{
			"bad tint",
			"fighters:\n  - name: x\n    max_health: 100\n    damage: 20\n    range: 48\n    tint: red\n",
			"tint",
		},
		{
			"duplicate names",
			"fighters:\n  - name: x\n    max_health: 100\n    damage: 20\n    range: 48\n  - name: x\n    max_health: 50\n    damage: 10\n    range: 30\n",
			"duplicate",
		},
		{
			"empty file",
			"fighters: []\n",
			"no fighter definitions",
		},
		{
			"not yaml",
			"{{{",
			"unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() accepted an invalid library")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultLibrary(t *testing.T) {
	lib := Default()
	for _, name := range []string{"brawler", "tank", "duelist"} {
		if _, ok := lib[name]; !ok {
			t.Errorf("embedded library missing %q", name)
		}
	}
}

func TestParseTint(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"empty means white", "", 0xff, 0xff, 0xff, false},
		{"red", "#e04040", 0xe0, 0x40, 0x40, false},
		{"black", "#000000", 0, 0, 0, false},
		{"missing hash", "e04040", 0, 0, 0, true},
		{"too short", "#e040", 0, 0, 0, true},
		{"not hex", "#zzzzzz", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, err := ParseTint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && (r != tt.r || g != tt.g || b != tt.b) {
				t.Errorf("ParseTint(%q) = (%d, %d, %d), want (%d, %d, %d)", tt.in, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}
