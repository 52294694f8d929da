package core

// Intent is a discrete input request from the UI collaborator. The physical
// source (keyboard, touch overlay, SSH client) is irrelevant to the simulation.
type Intent int

const (
	IntentNone      Intent = iota
	IntentMoveLeft         // Arrow left, A - walk left while held
	IntentMoveRight        // Arrow right, D - walk right while held
	IntentJump             // Space, W, Up - jump when grounded
	IntentAttack           // X, J - melee attack (combo on repeat)
	IntentPause            // P, Esc - pause/resume toggle
	IntentStart            // Enter - start a run from the menu
	IntentRestart          // R - return to the menu after game over
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "None"
	case IntentMoveLeft:
		return "MoveLeft"
	case IntentMoveRight:
		return "MoveRight"
	case IntentJump:
		return "Jump"
	case IntentAttack:
		return "Attack"
	case IntentPause:
		return "Pause"
	case IntentStart:
		return "Start"
	case IntentRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}

// RuntimeConfig contains host parameters passed to the simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters (terminal host)
	ScreenH  int   // Screen height in characters (terminal host)
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // Run seed, recorded in the score code
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in the host
	}
}
