package level

import (
	"errors"
	"fmt"
)

// Validation error codes.
const (
	CodeWidthTooSmall  = "WIDTH_TOO_SMALL"
	CodePlatformSize   = "PLATFORM_SIZE"
	CodePlatformBounds = "PLATFORM_BOUNDS"
	CodePlatformKind   = "PLATFORM_KIND"
	CodeMovingAxis     = "MOVING_AXIS"
	CodeMovingRange    = "MOVING_RANGE"
	CodeMovingSpeed    = "MOVING_SPEED"
	CodeSpawnInterval  = "SPAWN_INTERVAL"
	CodeMaxEnemies     = "MAX_ENEMIES"
	CodeAggression     = "AGGRESSION"
	CodeNoSpawns       = "NO_SPAWNS"
	CodeSpawnBounds    = "SPAWN_BOUNDS"
	CodeSpawnAnchor    = "SPAWN_ANCHOR"
	CodeDuplicateID    = "DUPLICATE_ID"
	CodeMissingID      = "MISSING_ID"
)

// ValidationError contains details about a level data error.
// Index is the offending platform or spawn point, or -1 for level-wide problems.
type ValidationError struct {
	Code    string
	Message string
	Level   string
	Index   int
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("[%s] level %s #%d: %s", e.Code, e.Level, e.Index, e.Message)
	}
	return fmt.Sprintf("[%s] level %s: %s", e.Code, e.Level, e.Message)
}

// Validate checks one level against the viewport it will be played in.
// All problems are reported, joined into one error.
func Validate(l Level, viewportWidth float64) error {
	var errs []error
	fail := func(code string, index int, format string, args ...any) {
		errs = append(errs, ValidationError{
			Code:    code,
			Message: fmt.Sprintf(format, args...),
			Level:   l.ID,
			Index:   index,
		})
	}

	if l.ID == "" {
		fail(CodeMissingID, -1, "level id is required")
	}
	if l.Width < viewportWidth {
		fail(CodeWidthTooSmall, -1, "width %.0f is smaller than the viewport width %.0f", l.Width, viewportWidth)
	}

	for i, p := range l.Platforms {
		if p.Width <= 0 || p.Height <= 0 {
			fail(CodePlatformSize, i, "platform size %.0fx%.0f must be positive", p.Width, p.Height)
		}
		switch p.Kind {
		case KindStatic:
		case KindMoving:
			if p.Axis != AxisX && p.Axis != AxisY {
				fail(CodeMovingAxis, i, "moving platform axis %q must be x or y", p.Axis)
			}
			if p.Range <= 0 {
				fail(CodeMovingRange, i, "moving platform range %.2f must be positive", p.Range)
			}
			if p.Speed <= 0 {
				fail(CodeMovingSpeed, i, "moving platform speed %.2f must be positive", p.Speed)
			}
		default:
			fail(CodePlatformKind, i, "unknown platform type %q", p.Kind)
		}
		if left, right := p.Extent(); left < 0 || right > l.Width {
			fail(CodePlatformBounds, i, "platform spans [%.0f, %.0f] outside [0, %.0f]", left, right, l.Width)
		}
	}

	e := l.Enemies
	if e.SpawnInterval <= 0 {
		fail(CodeSpawnInterval, -1, "spawn interval %.2f must be positive", e.SpawnInterval)
	}
	if e.MaxEnemies < 1 {
		fail(CodeMaxEnemies, -1, "max enemies %d must be at least 1", e.MaxEnemies)
	}
	if e.Aggression < 0 || e.Aggression > 1 {
		fail(CodeAggression, -1, "aggression %.2f must be within [0, 1]", e.Aggression)
	}

	if len(l.SpawnPoints) == 0 {
		fail(CodeNoSpawns, -1, "at least one spawn point is required")
	}
	for i, sp := range l.SpawnPoints {
		switch sp.X.Anchor {
		case AnchorNone:
			if sp.X.Value < 0 || sp.X.Value > l.Width {
				fail(CodeSpawnBounds, i, "spawn x %.0f outside [0, %.0f]", sp.X.Value, l.Width)
			}
		case AnchorLeft, AnchorRight:
		default:
			fail(CodeSpawnAnchor, i, "unknown spawn anchor %q", sp.X.Anchor)
		}
	}

	return errors.Join(errs...)
}

// ValidateSet validates every level and rejects duplicate IDs across the set.
func ValidateSet(levels []Level, viewportWidth float64) error {
	var errs []error
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		if err := Validate(l, viewportWidth); err != nil {
			errs = append(errs, err)
		}
		if l.ID != "" && seen[l.ID] {
			errs = append(errs, ValidationError{
				Code:    CodeDuplicateID,
				Message: "duplicate level id",
				Level:   l.ID,
				Index:   -1,
			})
		}
		seen[l.ID] = true
	}
	return errors.Join(errs...)
}

// Codes extracts the validation codes from an error returned by Validate.
func Codes(err error) []string {
	var codes []string
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if ve, ok := err.(ValidationError); ok {
			codes = append(codes, ve.Code)
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
		}
	}
	walk(err)
	return codes
}
