package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// clientState is the bit of state the CLI keeps between invocations.
// Holding at most one active session here is a client convention, the
// server happily accepts concurrent active sessions.
type clientState struct {
	ActiveSessionID *int `json:"active_session_id"`
}

func statePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home dir: %w", err)
	}
	return filepath.Join(home, ".workout-tracker-cli.json"), nil
}

func loadState() (*clientState, error) {
	path, err := statePath()
	if err != nil {
		return nil, err
	}

	stateBytes, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &clientState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state clientState
	if err := json.Unmarshal(stateBytes, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state file: %w", err)
	}
	return &state, nil
}

func (s *clientState) save() error {
	path, err := statePath()
	if err != nil {
		return err
	}

	stateBytes, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(path, stateBytes, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}
