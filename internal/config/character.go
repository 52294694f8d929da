package config

import (
	"fmt"
	"sort"
)

// DefaultCharacter is the roster key used when no character is chosen.
const DefaultCharacter = "hero"

// CharacterConfig is one playable skunk. Non-zero stats replace the
// matching player fields; everything else comes from the player section.
type CharacterConfig struct {
	Name         string  `yaml:"name"`
	MaxHealth    int     `yaml:"max_health"`
	Speed        float64 `yaml:"speed"`
	JumpForce    float64 `yaml:"jump_force"`
	AttackDamage int     `yaml:"attack_damage"`
}

// PlayerFor returns the player tuning for the character key. An empty key
// selects DefaultCharacter, or the plain player section when the roster
// has no such entry.
func (c GameConfig) PlayerFor(key string) (PlayerConfig, error) {
	p := c.Player
	if key == "" {
		key = DefaultCharacter
		if _, ok := c.Characters[key]; !ok {
			return p, nil
		}
	}
	ch, ok := c.Characters[key]
	if !ok {
		return p, fmt.Errorf("unknown character %q (available: %v)", key, c.CharacterKeys())
	}
	if ch.MaxHealth > 0 {
		p.MaxHealth = ch.MaxHealth
	}
	if ch.Speed > 0 {
		p.Speed = ch.Speed
	}
	if ch.JumpForce > 0 {
		p.JumpForce = ch.JumpForce
	}
	if ch.AttackDamage > 0 {
		p.AttackDamage = ch.AttackDamage
	}
	return p, nil
}

// CharacterName returns the display name of the character key.
func (c GameConfig) CharacterName(key string) string {
	if key == "" {
		key = DefaultCharacter
	}
	if ch, ok := c.Characters[key]; ok && ch.Name != "" {
		return ch.Name
	}
	return key
}

// CharacterKeys returns the roster keys in sorted order.
func (c GameConfig) CharacterKeys() []string {
	keys := make([]string, 0, len(c.Characters))
	for k := range c.Characters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
