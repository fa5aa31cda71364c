package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrBundleStateNotFound is returned when state.json is missing.
var ErrBundleStateNotFound = errors.New("model bundle state not found")

// BundleState tracks the active and previous bundle versions. Bundles
// are laid out as <bundle_dir>/<version>/{ner,nli,embedding}.
type BundleState struct {
	CurrentVersion  string `json:"current_version"`
	PreviousVersion string `json:"previous_version,omitempty"`
}

func stateFilePath(baseDir string) string {
	return filepath.Join(baseDir, "state.json")
}

// LoadBundleState reads <bundle_dir>/state.json.
func LoadBundleState(baseDir string) (BundleState, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return BundleState{}, errors.New("baseDir is empty")
	}

	data, err := os.ReadFile(stateFilePath(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return BundleState{}, ErrBundleStateNotFound
		}
		return BundleState{}, fmt.Errorf("read bundle state: %w", err)
	}

	var state BundleState
	if err := json.Unmarshal(data, &state); err != nil {
		return BundleState{}, fmt.Errorf("decode bundle state: %w", err)
	}
	return state, nil
}

// SaveBundleState writes <bundle_dir>/state.json atomically.
func SaveBundleState(baseDir string, state BundleState) error {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		return errors.New("baseDir is empty")
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return fmt.Errorf("create bundle base dir: %w", err)
	}

	state.CurrentVersion = strings.TrimSpace(state.CurrentVersion)
	state.PreviousVersion = strings.TrimSpace(state.PreviousVersion)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bundle state: %w", err)
	}

	tmpFile, err := os.CreateTemp(baseDir, "state.json.tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("chmod temp state file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp state file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), stateFilePath(baseDir)); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// ResolveBundleDir follows state.json to the active versioned bundle
// directory, falling back to baseDir itself for unversioned layouts.
func ResolveBundleDir(baseDir string) string {
	state, err := LoadBundleState(baseDir)
	if err != nil || state.CurrentVersion == "" {
		return baseDir
	}
	versioned := filepath.Join(baseDir, state.CurrentVersion)
	if _, err := os.Stat(versioned); err != nil {
		return baseDir
	}
	return versioned
}
