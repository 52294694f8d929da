package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.skunk/configs/game.yaml -> ./configs/game.yaml -> embedded default.
// Files are decoded over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (GameConfig, error) {
	// Try custom path first; an explicit path that fails is an error
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "game.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultGameConfig and validates the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Display.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("display.tick_rate must be positive, got %d", c.Display.TickRate))
	}
	if c.Display.ViewportWidth <= 0 || c.Display.ViewportHeight <= 0 {
		errs = append(errs, errors.New("display viewport must be positive"))
	}
	if c.Physics.Gravity <= 0 || c.Physics.MaxFallSpeed <= 0 {
		errs = append(errs, errors.New("physics.gravity and physics.max_fall_speed must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.MaxHealth <= 0 {
		errs = append(errs, errors.New("player size and max_health must be positive"))
	}
	for key, ch := range c.Characters {
		if ch.MaxHealth < 0 || ch.Speed < 0 || ch.JumpForce < 0 || ch.AttackDamage < 0 {
			errs = append(errs, fmt.Errorf("character %q: stats must not be negative", key))
		}
	}
	if len(c.Enemies) == 0 {
		errs = append(errs, errors.New("at least one enemy type is required"))
	}
	for key, e := range c.Enemies {
		if e.Health <= 0 || e.Width <= 0 || e.Height <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: health and size must be positive", key))
		}
		if e.Points < 0 {
			errs = append(errs, fmt.Errorf("enemy %q: points must not be negative", key))
		}
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skunk", "configs", filename)
}
