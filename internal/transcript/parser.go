package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// RecordTypeMessage is the declared type of records that carry agent messages.
const RecordTypeMessage = "message"

var (
	// ErrMalformedLine is returned for blank lines and lines that are not a JSON object.
	ErrMalformedLine = errors.New("malformed session record")
	// ErrNotMessage is returned for well-formed records of any type other than "message".
	ErrNotMessage = errors.New("record is not a message")
	// ErrInvalidUTF8 is returned when a session file cannot be decoded as UTF-8 text.
	ErrInvalidUTF8 = errors.New("session file is not valid UTF-8")
)

// MessageRecord is a single "message" line of a session log.
type MessageRecord struct {
	Type      string
	Timestamp Timestamp
	Model     string
	Role      string
	Usage     map[string]any
	Raw       map[string]any
}

// ScanResult holds what a reverse scan of a session log found.
// Last is nil when the file contains no message records.
type ScanResult struct {
	Last  *MessageRecord
	Model string
}

// Line is the parse outcome of one line in a session log.
type Line struct {
	Number int
	Record *MessageRecord
	Err    error
}

// Parser handles JSONL session log parsing
type Parser struct{}

// NewParser creates a new session log parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine decodes one JSONL line into a MessageRecord. It returns
// ErrMalformedLine or ErrNotMessage (possibly wrapped) for anything else.
func ParseLine(line []byte) (*MessageRecord, error) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil, ErrMalformedLine
	}

	var raw map[string]any
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	if raw == nil {
		return nil, ErrMalformedLine
	}

	recordType, _ := raw["type"].(string)
	if recordType != RecordTypeMessage {
		return nil, ErrNotMessage
	}

	var message map[string]any
	if v, present := raw["message"]; present {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: message field is not an object", ErrMalformedLine)
		}
		message = m
	}

	record := &MessageRecord{
		Type: recordType,
		Raw:  raw,
	}

	ts := TimestampFrom(raw["timestamp"])
	if ts.Kind == TimestampAbsent && message != nil {
		ts = TimestampFrom(message["timestamp"])
	}
	record.Timestamp = ts

	if message != nil {
		record.Model, _ = message["model"].(string)
		record.Role, _ = message["role"].(string)
		record.Usage, _ = message["usage"].(map[string]any)
	}

	return record, nil
}

// ReadLines reads a session log as UTF-8 and parses every line. The whole
// file is held in memory; session logs are expected to stay small.
func (p *Parser) ReadLines(path string) ([]Line, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, ErrInvalidUTF8
	}

	raw := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	lines := make([]Line, 0, len(raw))
	for i, l := range raw {
		record, err := ParseLine(l)
		lines = append(lines, Line{Number: i + 1, Record: record, Err: err})
	}
	return lines, nil
}

// ScanFile walks a session log from the newest line backwards. The first
// message record found is kept as Last; the scan then continues only until a
// record carrying a model is found, which may be an older record than Last.
func (p *Parser) ScanFile(path string) (ScanResult, error) {
	lines, err := p.ReadLines(path)
	if err != nil {
		return ScanResult{}, err
	}
	return scanReverse(lines), nil
}

func scanReverse(lines []Line) ScanResult {
	var result ScanResult
	for i := len(lines) - 1; i >= 0; i-- {
		record := lines[i].Record
		if lines[i].Err != nil || record == nil {
			continue
		}
		if result.Last == nil {
			result.Last = record
		}
		if record.Model != "" {
			result.Model = record.Model
			break
		}
	}
	return result
}

// ParseFile parses an entire JSONL file in order and returns its message
// records. Lines that are not message records are skipped. It reads the file
// the same way as ScanFile, so there is no per-line length limit and invalid
// UTF-8 fails the whole file with ErrInvalidUTF8.
func (p *Parser) ParseFile(path string) ([]MessageRecord, error) {
	lines, err := p.ReadLines(path)
	if err != nil {
		return nil, err
	}

	records := make([]MessageRecord, 0, len(lines))
	for _, line := range lines {
		if line.Err != nil || line.Record == nil {
			continue
		}
		records = append(records, *line.Record)
	}
	return records, nil
}
