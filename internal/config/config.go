// Package config persists the cancellation feature's configuration: the two
// feature flags and the authored rule table, stored in a single JSON file.
//
// The file is read with gjson and updated with surgical sjson writes, so flag
// saves preserve unrelated content (including the rule list) byte for byte.
// A missing file is not an error; it reads as defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keycancel/internal/cancel"
	"github.com/dshills/keycancel/internal/input/key"
)

// Config errors.
var (
	// ErrBadRule indicates a rule entry with a missing or unknown key name.
	ErrBadRule = errors.New("config: bad cancellation rule")

	// ErrNotBasic indicates a rule referencing a key that is not a basic
	// keycode. Only basic keycodes may appear in rules.
	ErrNotBasic = errors.New("config: rule key is not a basic keycode")
)

// JSON paths within the config file.
const (
	enabledPath  = "cancellation.enabled"
	recoveryPath = "cancellation.recovery"
	rulesPath    = "rules"
)

// File is a JSON-file-backed store for flags and rules. It implements
// cancel.FlagStore.
type File struct {
	path string
}

// NewFile creates a store backed by the JSON file at path. The file need not
// exist yet; it is created on first Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// DefaultPath returns the conventional config location,
// $XDG_CONFIG_HOME/keycancel/config.json or the platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keycancel.json"
	}
	return filepath.Join(dir, "keycancel", "config.json")
}

// Load reads the feature flags. A missing file yields zero flags and no
// error.
func (f *File) Load() (cancel.Flags, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cancel.Flags{}, nil
		}
		return cancel.Flags{}, fmt.Errorf("config: read %s: %w", f.path, err)
	}

	return cancel.Flags{
		Enabled:         gjson.GetBytes(data, enabledPath).Bool(),
		RecoveryEnabled: gjson.GetBytes(data, recoveryPath).Bool(),
	}, nil
}

// Save writes the feature flags, preserving everything else in the file. The
// parent directory is created if needed.
func (f *File) Save(flags cancel.Flags) error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("config: read %s: %w", f.path, err)
		}
		data = []byte("{}")
	}

	data, err = sjson.SetBytes(data, enabledPath, flags.Enabled)
	if err != nil {
		return fmt.Errorf("config: set %s: %w", enabledPath, err)
	}
	data, err = sjson.SetBytes(data, recoveryPath, flags.RecoveryEnabled)
	if err != nil {
		return fmt.Errorf("config: set %s: %w", recoveryPath, err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", f.path, err)
	}
	return nil
}

// Rules reads the authored rule table. A missing file or absent rules array
// yields an empty table and no error.
func (f *File) Rules() (cancel.Rules, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", f.path, err)
	}
	return ParseRules(data)
}

// ParseRules decodes the rules array from raw config JSON. Each entry is an
// object with "press" and "unpress" key names, resolved case-insensitively;
// both sides must be basic keycodes.
func ParseRules(data []byte) (cancel.Rules, error) {
	entries := gjson.GetBytes(data, rulesPath)
	if !entries.Exists() {
		return nil, nil
	}

	var rules cancel.Rules
	var parseErr error
	entries.ForEach(func(_, entry gjson.Result) bool {
		i := len(rules)
		press, err := ruleKey(entry, "press", i)
		if err != nil {
			parseErr = err
			return false
		}
		unpress, err := ruleKey(entry, "unpress", i)
		if err != nil {
			parseErr = err
			return false
		}
		rules = append(rules, cancel.Rule{Press: press, Unpress: unpress})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return rules, nil
}

// ruleKey resolves one side of a rule entry to a basic keycode.
func ruleKey(entry gjson.Result, field string, i int) (key.Key, error) {
	name := entry.Get(field).String()
	k := key.FromName(name)
	if k == key.KeyNone {
		return key.KeyNone, fmt.Errorf("%w: rules[%d].%s = %q", ErrBadRule, i, field, name)
	}
	if !k.IsBasic() {
		return key.KeyNone, fmt.Errorf("%w: rules[%d].%s = %q", ErrNotBasic, i, field, name)
	}
	return k, nil
}
