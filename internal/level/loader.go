package level

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// file is the on-disk shape of a level file: a list of levels.
type file struct {
	Levels []Level `yaml:"levels"`
}

// Parse decodes a level file and fills optional fields.
// It does not validate; see Validate.
func Parse(data []byte) ([]Level, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	for i := range f.Levels {
		f.Levels[i].Normalize()
	}
	return f.Levels, nil
}

// LoadDefault returns the built-in level set.
func LoadDefault() ([]Level, error) {
	levels, err := Parse(defaultLevelsYAML)
	if err != nil {
		return nil, fmt.Errorf("level: embedded levels: %w", err)
	}
	sortLevels(levels)
	return levels, nil
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Levels are ordered by their order field, then by ID. Files that fail to
// parse are reported in the returned error while the rest still load.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	var errs []error

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(path) {
			return nil
		}

		loaded, err := l.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		levels = append(levels, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("level: walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, errors.Join(errs...)
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: reading file %s: %w", path, err)
	}
	levels, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: parsing file %s: %w", path, err)
	}
	for i := range levels {
		levels[i].FilePath = path
	}
	return levels, nil
}

// Load returns the levels in dir (or the built-in set when dir is empty)
// that pass validation. Rejected levels are dropped and described in the
// returned error; it is an error only for the caller to decide on, unless
// no level survived.
func Load(dir string, viewportWidth float64) ([]Level, error) {
	var (
		all     []Level
		loadErr error
	)
	if dir == "" {
		var err error
		if all, err = LoadDefault(); err != nil {
			return nil, err
		}
	} else {
		all, loadErr = NewLoader(dir).LoadAll()
		if all == nil && loadErr != nil {
			return nil, loadErr
		}
	}

	valid, err := Filter(all, viewportWidth)
	err = errors.Join(loadErr, err)
	if len(valid) == 0 {
		return nil, errors.Join(errors.New("level: no valid levels"), err)
	}
	return valid, err
}

// Filter keeps the levels that validate and reports the rest.
func Filter(levels []Level, viewportWidth float64) ([]Level, error) {
	var (
		valid []Level
		errs  []error
	)
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		if err := Validate(l, viewportWidth); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[l.ID] {
			errs = append(errs, ValidationError{Code: CodeDuplicateID, Message: "duplicate level id", Level: l.ID, Index: -1})
			continue
		}
		seen[l.ID] = true
		valid = append(valid, l)
	}
	return valid, errors.Join(errs...)
}

func sortLevels(levels []Level) {
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
}

// isSupportedExtension checks if the file looks like a YAML level file.
func isSupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
