package level

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/skunk-squad/internal/config"
	"gopkg.in/yaml.v3"
)

func TestLoadDefault(t *testing.T) {
	levels, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if len(levels) != 3 {
		t.Fatalf("LoadDefault() returned %d levels, expected 3", len(levels))
	}

	wantIDs := []string{"level_1", "level_2", "level_3"}
	for i, l := range levels {
		if l.ID != wantIDs[i] {
			t.Errorf("levels[%d].ID = %q, expected %q", i, l.ID, wantIDs[i])
		}
	}

	if err := ValidateSet(levels, 1280); err != nil {
		t.Errorf("built-in levels should validate, got %v", err)
	}

	city := levels[1]
	if city.Width != 3200 {
		t.Errorf("Skunk City width = %v, expected 3200", city.Width)
	}
	mover := city.Platforms[3]
	if !mover.Moving() || mover.Axis != AxisY || mover.Range != 100 {
		t.Errorf("Skunk City platform 3 = %+v, expected moving y range 100", mover)
	}
	if got := city.SpawnPoints[0].X; got.Anchor != AnchorRight {
		t.Errorf("first spawn x = %v, expected right anchor", got)
	}
	if got := city.SpawnPoints[3].X; got.IsAnchor() || got.Value != 2400 {
		t.Errorf("fourth spawn x = %v, expected 2400", got)
	}
}

func TestParseDefaults(t *testing.T) {
	data := []byte(`
levels:
  - id: tiny
    width: 1300
    spawn_points: [{ x: 10, y: 0 }]
    platforms:
      - { x: 0, y: 700, width: 1300, height: 40 }
    enemies: { spawn_interval: 1, max_enemies: 2, aggression: 0.3 }
`)
	levels, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	l := levels[0]
	if l.Platforms[0].Kind != KindStatic {
		t.Errorf("platform kind = %q, expected static", l.Platforms[0].Kind)
	}
	if l.Enemies.Budget != 6 {
		t.Errorf("Budget = %d, expected 3*max_enemies = 6", l.Enemies.Budget)
	}
	if !slices.Equal(l.Enemies.Types, []string{"basic"}) {
		t.Errorf("Types = %v, expected [basic]", l.Enemies.Types)
	}
}

func TestSpawnXUnmarshal(t *testing.T) {
	tests := []struct {
		yaml    string
		want    SpawnX
		wantErr bool
	}{
		{"x: 1200", At(1200), false},
		{"x: 12.5", At(12.5), false},
		{"x: left", Edge(AnchorLeft), false},
		{"x: right", Edge(AnchorRight), false},
		{"x: middle", Edge("middle"), false},
		{"x: [1, 2]", SpawnX{}, true},
	}

	for _, tt := range tests {
		var sp SpawnPoint
		err := yaml.Unmarshal([]byte(tt.yaml), &sp)
		if (err != nil) != tt.wantErr {
			t.Errorf("unmarshal %q error = %v, wantErr %v", tt.yaml, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && sp.X != tt.want {
			t.Errorf("unmarshal %q = %+v, expected %+v", tt.yaml, sp.X, tt.want)
		}
	}
}

func TestSpawnXResolve(t *testing.T) {
	tests := []struct {
		x    SpawnX
		want float64
	}{
		{At(500), 500},
		{Edge(AnchorLeft), 120},
		{Edge(AnchorRight), 1000 - 20 - 50},
	}

	for _, tt := range tests {
		if got := tt.x.Resolve(100, 1000, 20, 50); got != tt.want {
			t.Errorf("Resolve(%v) = %v, expected %v", tt.x, got, tt.want)
		}
	}
}

func validLevel() Level {
	return Level{
		ID:          "ok",
		Width:       2000,
		SpawnPoints: []SpawnPoint{{X: At(100), Y: 300}},
		Platforms: []PlatformDef{
			{X: 0, Y: 700, Width: 2000, Height: 40, Kind: KindStatic},
			{X: 500, Y: 400, Width: 100, Height: 24, Kind: KindMoving, Axis: AxisX, Range: 100, Speed: 90},
		},
		Enemies: EnemyConfig{SpawnInterval: 2, MaxEnemies: 3, Aggression: 0.5, Budget: 9, Types: []string{"basic"}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Level)
		want   string
	}{
		{"valid", func(l *Level) {}, ""},
		{"narrow", func(l *Level) { l.Width = 1000; l.Platforms = l.Platforms[1:] }, CodeWidthTooSmall},
		{"zero height", func(l *Level) { l.Platforms[0].Height = 0 }, CodePlatformSize},
		{"out of bounds", func(l *Level) { l.Platforms[0].X = -5 }, CodePlatformBounds},
		{"moving past edge", func(l *Level) { l.Platforms[1].X = 1850 }, CodePlatformBounds},
		{"bad axis", func(l *Level) { l.Platforms[1].Axis = "z" }, CodeMovingAxis},
		{"zero range", func(l *Level) { l.Platforms[1].Range = 0 }, CodeMovingRange},
		{"zero speed", func(l *Level) { l.Platforms[1].Speed = 0 }, CodeMovingSpeed},
		{"zero interval", func(l *Level) { l.Enemies.SpawnInterval = 0 }, CodeSpawnInterval},
		{"no enemies", func(l *Level) { l.Enemies.MaxEnemies = 0 }, CodeMaxEnemies},
		{"aggression", func(l *Level) { l.Enemies.Aggression = 1.5 }, CodeAggression},
		{"no spawns", func(l *Level) { l.SpawnPoints = nil }, CodeNoSpawns},
		{"spawn outside", func(l *Level) { l.SpawnPoints[0].X = At(5000) }, CodeSpawnBounds},
		{"unknown anchor", func(l *Level) { l.SpawnPoints[0].X = Edge("middle") }, CodeSpawnAnchor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLevel()
			tt.mutate(&l)
			codes := Codes(Validate(l, 1280))
			if tt.want == "" {
				if len(codes) != 0 {
					t.Errorf("Validate() codes = %v, expected none", codes)
				}
				return
			}
			if !slices.Contains(codes, tt.want) {
				t.Errorf("Validate() codes = %v, expected %s", codes, tt.want)
			}
		})
	}
}

func TestValidateSetDuplicateID(t *testing.T) {
	err := ValidateSet([]Level{validLevel(), validLevel()}, 1280)
	if !slices.Contains(Codes(err), CodeDuplicateID) {
		t.Errorf("ValidateSet() = %v, expected %s", err, CodeDuplicateID)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	good := `
levels:
  - id: b
    order: 2
    width: 1300
    spawn_points: [{ x: left, y: 0 }]
    platforms: [{ x: 0, y: 700, width: 1300, height: 40 }]
    enemies: { spawn_interval: 1, max_enemies: 1, aggression: 0.1 }
  - id: a
    order: 1
    width: 1300
    spawn_points: [{ x: right, y: 0 }]
    platforms: [{ x: 0, y: 700, width: 1300, height: 40 }]
    enemies: { spawn_interval: 1, max_enemies: 1, aggression: 0.1 }
  - id: broken
    order: 3
    width: 10
    spawn_points: []
    enemies: { spawn_interval: 1, max_enemies: 1, aggression: 0.1 }
`
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("set.yaml", good)
	write("bad.yml", "levels: {")
	write("notes.txt", "ignored")

	all, err := NewLoader(dir).LoadAll()
	if err == nil {
		t.Error("LoadAll() expected parse error for bad.yml")
	}
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "b" {
		t.Fatalf("LoadAll() order = %v, expected a, b, broken", ids(all))
	}
	if all[0].FilePath == "" {
		t.Error("FilePath should be set")
	}

	valid, err := Load(dir, 1280)
	if err == nil {
		t.Error("Load() should report the rejected level")
	}
	if len(valid) != 2 {
		t.Errorf("Load() kept %v, expected [a b]", ids(valid))
	}
}

func TestLoadEmptyDirFails(t *testing.T) {
	if _, err := Load(t.TempDir(), 1280); err == nil {
		t.Error("Load() of an empty directory should fail")
	}
}

func TestApplyDifficulty(t *testing.T) {
	levels, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}

	hard := ApplyDifficulty(levels, config.DifficultyHard)
	if got := hard[2].Enemies.Aggression; got != 1 {
		t.Errorf("hard level_3 aggression = %v, expected clamped 1", got)
	}
	if got := hard[0].Enemies.Aggression; got != 0.625 {
		t.Errorf("hard level_1 aggression = %v, expected 0.625", got)
	}
	if levels[0].Enemies.Aggression != 0.5 {
		t.Error("ApplyDifficulty must not modify its input")
	}

	easy := ApplyDifficulty(levels, config.DifficultyEasy)
	if easy[0].Enemies.SpawnInterval <= levels[0].Enemies.SpawnInterval {
		t.Errorf("easy spawn interval = %v, expected slower than %v", easy[0].Enemies.SpawnInterval, levels[0].Enemies.SpawnInterval)
	}
}

func ids(levels []Level) []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = l.ID
	}
	return out
}
