package display

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/grovetools/agentstatus/internal/session"
	"github.com/grovetools/agentstatus/internal/status"
	"github.com/grovetools/agentstatus/internal/usage"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

// PrintStatusTable prints agent statuses in a formatted table.
func PrintStatusTable(statuses []status.AgentStatus, now time.Time, writer io.Writer) {
	var buf bytes.Buffer
	w := newTabWriter(&buf)
	fmt.Fprintln(w, "NAME\tSTATUS\tLAST ACTIVITY\tMODEL\tSESSION")
	for _, s := range statuses {
		model := "-"
		if s.Model != nil {
			model = *s.Model
		}
		sessionFile := s.SessionFile
		if sessionFile == "" {
			sessionFile = "-"
		} else if s.SessionDeleted {
			sessionFile += " (deleted)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			displayName(s.Name), s.Status, FormatAge(now, s.LastActivity), model, sessionFile)
	}
	w.Flush()

	// Colour is applied after alignment so escape codes don't skew column widths.
	lines := strings.SplitAfter(buf.String(), "\n")
	for i, line := range lines {
		if i > 0 && i <= len(statuses) {
			s := statuses[i-1]
			line = colorizeCell(line, len(displayName(s.Name)), string(s.Status), StatusStyle(s.Status).Render)
		}
		io.WriteString(writer, line)
	}

	for _, s := range statuses {
		if s.Error != "" {
			fmt.Fprintf(writer, "%s: %s\n", displayName(s.Name), s.Error)
		}
	}
}

// colorizeCell replaces the cell text that follows the first column of an
// aligned row with its rendered form.
func colorizeCell(line string, firstWidth int, cell string, render func(...string) string) string {
	pos := firstWidth
	for pos < len(line) && line[pos] == ' ' {
		pos++
	}
	if !strings.HasPrefix(line[pos:], cell) {
		return line
	}
	return line[:pos] + render(cell) + line[pos+len(cell):]
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

// PrintMessagesTable prints message records in a formatted table.
func PrintMessagesTable(messages []session.AgentMessage, writer io.Writer) {
	w := newTabWriter(writer)
	fmt.Fprintln(w, "AGENT\tTIME\tROLE\tMODEL\tINPUT\tOUTPUT\tFILE")
	for _, m := range messages {
		ts := "-"
		if m.Timestamp != nil {
			ts = time.UnixMilli(*m.Timestamp).Format("2006-01-02 15:04:05")
		}
		tokens := usage.TokensFrom(m.Usage)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			displayName(m.Agent), ts, orDash(m.Role), orDash(m.Model), tokens.Input, tokens.Output, m.File)
	}
	w.Flush()
}

// PrintUsageTable prints the per-agent usage report followed by a total row.
func PrintUsageTable(rows []usage.AgentUsage, writer io.Writer) {
	w := newTabWriter(writer)
	fmt.Fprintln(w, "AGENT\tREQUESTS\tINPUT\tOUTPUT\tCACHE READ\tCACHE WRITE\tTHINKING\tCOST (USD)")
	printRow := func(name string, r usage.AgentUsage) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%.4f\n",
			name, r.Requests, r.Tokens.Input, r.Tokens.Output,
			r.Tokens.CacheRead, r.Tokens.CacheWrite, r.Tokens.Thinking, r.CostUSD)
	}
	for _, r := range rows {
		printRow(displayName(r.Agent), r)
	}
	if len(rows) > 1 {
		printRow("TOTAL", usage.Total(rows))
	}
	w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
