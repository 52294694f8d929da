package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	def := DefaultGameConfig()

	if cfg.Display != def.Display {
		t.Errorf("Display = %+v, expected %+v", cfg.Display, def.Display)
	}
	if cfg.Physics != def.Physics {
		t.Errorf("Physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Player != def.Player {
		t.Errorf("Player = %+v, expected %+v", cfg.Player, def.Player)
	}
	if cfg.Score != def.Score {
		t.Errorf("Score = %+v, expected %+v", cfg.Score, def.Score)
	}
	for key, want := range def.Enemies {
		if got := cfg.Enemies[key]; got != want {
			t.Errorf("Enemies[%q] = %+v, expected %+v", key, got, want)
		}
	}
	for key, want := range def.Characters {
		if got := cfg.Characters[key]; got != want {
			t.Errorf("Characters[%q] = %+v, expected %+v", key, got, want)
		}
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 2000\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Physics.Gravity != 2000 {
		t.Errorf("Gravity = %v, expected 2000", cfg.Physics.Gravity)
	}
	if cfg.Physics.MaxFallSpeed != 800 {
		t.Errorf("MaxFallSpeed = %v, expected default 800", cfg.Physics.MaxFallSpeed)
	}
	if cfg.Player.Speed != 300 {
		t.Errorf("Player.Speed = %v, expected default 300", cfg.Player.Speed)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tick rate", "display:\n  tick_rate: 0\n"},
		{"negative gravity", "physics:\n  gravity: -1\n"},
		{"bad enemy", "enemies:\n  ghost:\n    sprite: ghost\n"},
		{"negative character", "characters:\n  tank:\n    speed: -1\n"},
		{"not yaml", "display: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.yaml)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.yaml")
	if err := os.WriteFile(path, []byte("player:\n  max_health: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.MaxHealth != 3 {
		t.Errorf("MaxHealth = %d, expected 3", cfg.Player.MaxHealth)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load(missing) expected error")
	}
}

func TestClipsFallback(t *testing.T) {
	cfg := DefaultGameConfig()
	if got := cfg.Clips("unknown"); got["idle"].Sprite != "basic_idle" {
		t.Errorf("Clips(unknown)[idle] = %+v, expected basic table", got["idle"])
	}
	if got := cfg.Clips("player"); got["attack3"].Frames != 6 {
		t.Errorf("Clips(player)[attack3].Frames = %d, expected 6", got["attack3"].Frames)
	}
}

func TestMaxPointsPerKill(t *testing.T) {
	if got := DefaultGameConfig().MaxPointsPerKill(); got != 250 {
		t.Errorf("MaxPointsPerKill() = %d, expected 250", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}

	if s := ScaleFor(DifficultyEasy); s.Aggression >= 1 || s.SpawnInterval <= 1 {
		t.Errorf("ScaleFor(easy) = %+v, expected gentler values", s)
	}
}

func TestPlayerFor(t *testing.T) {
	cfg := DefaultGameConfig()

	tests := []struct {
		key       string
		health    int
		speed     float64
		jumpForce float64
		damage    int
	}{
		{"", 100, 300, 600, 20},
		{"hero", 100, 300, 600, 20},
		{"ninja", 80, 400, 700, 15},
		{"tank", 150, 200, 500, 30},
		{"mage", 70, 250, 550, 25},
	}

	for _, tt := range tests {
		p, err := cfg.PlayerFor(tt.key)
		if err != nil {
			t.Errorf("PlayerFor(%q) error = %v", tt.key, err)
			continue
		}
		if p.MaxHealth != tt.health || p.Speed != tt.speed || p.JumpForce != tt.jumpForce || p.AttackDamage != tt.damage {
			t.Errorf("PlayerFor(%q) = health %d speed %v jump %v damage %d, expected %d %v %v %d",
				tt.key, p.MaxHealth, p.Speed, p.JumpForce, p.AttackDamage, tt.health, tt.speed, tt.jumpForce, tt.damage)
		}
		if p.Width != cfg.Player.Width || p.AttackReach != cfg.Player.AttackReach {
			t.Errorf("PlayerFor(%q) changed body or reach", tt.key)
		}
	}

	if _, err := cfg.PlayerFor("raccoon"); err == nil {
		t.Error("PlayerFor(raccoon) expected error")
	}
	if got := cfg.CharacterName("tank"); got != "Tank Skunk" {
		t.Errorf("CharacterName(tank) = %q, expected Tank Skunk", got)
	}
	if got := cfg.CharacterKeys(); len(got) != 4 || got[0] != "hero" {
		t.Errorf("CharacterKeys() = %v, expected 4 keys starting with hero", got)
	}
}

func TestPlayerForWithoutRoster(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Characters = nil
	cfg.Player.Speed = 123

	p, err := cfg.PlayerFor("")
	if err != nil {
		t.Fatalf("PlayerFor(\"\") error = %v", err)
	}
	if p.Speed != 123 {
		t.Errorf("Speed = %v, expected the player section's 123", p.Speed)
	}
}
