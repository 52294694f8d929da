package sim

// Sound intents. Hosts map them to audio, or ignore them.
const (
	SoundJump       = "jump"
	SoundAttack1    = "attack1"
	SoundAttack2    = "attack2"
	SoundAttack3    = "attack3"
	SoundCombo      = "combo"
	SoundPlayerHit  = "player_hit"
	SoundLand       = "land"
	SoundEnemyHit   = "enemy_hit"
	SoundEnemyDeath = "enemy_death"
	SoundPause      = "pause"
	SoundGameOver   = "game_over"
	SoundMenuSelect = "menu_select"
)

// EventKind separates one-shot sounds from music changes.
type EventKind int

const (
	EventSound EventKind = iota
	EventMusic
	EventLevel // a level was loaded; Name is its ID
)

func (k EventKind) String() string {
	switch k {
	case EventSound:
		return "sound"
	case EventMusic:
		return "music"
	case EventLevel:
		return "level"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget intent for collaborators. Events never feed back
// into the simulation.
type Event struct {
	Kind EventKind
	Name string
	Tick int64
}

// MusicFor returns the music track name for a level background.
func MusicFor(background string) string {
	return "music_" + background
}
