package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// BinaryEnv points the scenarios at a specific agstatus build.
const BinaryEnv = "AGSTATUS_BINARY"

// FindProjectBinary locates the agstatus binary, preferring $AGSTATUS_BINARY
// and then bin/agstatus in the nearest directory containing go.mod.
func FindProjectBinary() (string, error) {
	if path := os.Getenv(BinaryEnv); path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%s=%s: %w", BinaryEnv, path, err)
		}
		return path, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			bin := filepath.Join(dir, "bin", "agstatus")
			if _, err := os.Stat(bin); err != nil {
				return "", fmt.Errorf("agstatus binary not found at %s (build it with 'go build -o bin/agstatus .' or set %s)", bin, BinaryEnv)
			}
			return bin, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root from working directory")
		}
		dir = parent
	}
}
