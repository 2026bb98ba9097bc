package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveSessionFile finds a session log from a specifier which can be a
// direct path to a log file or an agent id.
func ResolveSessionFile(l *Locator, spec string) (*SessionFileRef, error) {
	// Strategy 1: Check if spec is a direct log file path
	if info, err := os.Stat(spec); err == nil && !info.IsDir() {
		absSpec, err := filepath.Abs(spec)
		if err != nil {
			absSpec = spec
		}
		name := filepath.Base(absSpec)
		return &SessionFileRef{
			FileName:   name,
			Path:       absSpec,
			ModifiedAt: info.ModTime(),
			Deleted:    strings.Contains(name, DeletedMarker),
		}, nil
	}

	// Strategy 2: Treat spec as an agent id
	if !validAgentID(spec) {
		return nil, fmt.Errorf("could not find session matching spec: %s", spec)
	}
	ref := l.Latest(spec)
	if ref == nil {
		return nil, fmt.Errorf("no session file found for agent %s", spec)
	}
	return ref, nil
}
