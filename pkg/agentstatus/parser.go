package agentstatus

import (
	"github.com/grovetools/agentstatus/internal/transcript"
)

// ScanResult holds the newest message record and nearest model of a session log.
type ScanResult = transcript.ScanResult

// Parser wraps the internal session log parser
type Parser struct {
	*transcript.Parser
}

// NewParser creates a new session log parser
func NewParser() *Parser {
	return &Parser{
		Parser: transcript.NewParser(),
	}
}

// LastActivity returns the newest message timestamp of a session log in
// epoch milliseconds, falling back to fallbackMs when it has none or it
// cannot be parsed.
func (p *Parser) LastActivity(path string, fallbackMs int64) (int64, error) {
	result, err := p.ScanFile(path)
	if err != nil {
		return 0, err
	}
	if result.Last == nil {
		return fallbackMs, nil
	}
	return transcript.NormalizeTimestamp(result.Last.Timestamp, fallbackMs), nil
}
