package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/sjson"
)

// SetField writes value at the dotted key into the config file at path,
// creating the file when it does not exist. Values that parse as JSON are
// stored raw so numbers and booleans keep their type.
func SetField(path, key, value string) error {
	if key == "" {
		return errors.New("empty config key")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		data = []byte("{}")
	}

	var newValue string
	if json.Valid([]byte(value)) {
		newValue, err = sjson.SetRaw(string(data), key, value)
	} else {
		newValue, err = sjson.Set(string(data), key, value)
	}
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}

	if _, err := LoadReader(bytes.NewReader([]byte(newValue))); err != nil {
		return fmt.Errorf("config field %s: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %q: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(newValue), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
