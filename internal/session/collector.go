package session

import (
	"context"
	"sort"

	"github.com/grovetools/agentstatus/internal/transcript"
	"github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
)

// Collector gathers every message record across agents for analytics.
type Collector struct {
	locator *Locator
	parser  *transcript.Parser
	logger  *logrus.Entry
}

// NewCollector creates a collector reading through the given locator.
func NewCollector(locator *Locator) *Collector {
	return &Collector{
		locator: locator,
		parser:  transcript.NewParser(),
		logger:  logging.NewLogger("agstatus.collector"),
	}
}

// All returns the message records of every active session log of every
// listed agent. Soft-deleted logs are not read. Unreadable directories and
// files are skipped.
func (c *Collector) All(ctx context.Context, agentIDs []string) []AgentMessage {
	var messages []AgentMessage
	for _, agentID := range agentIDs {
		if ctx.Err() != nil {
			return messages
		}

		refs, err := c.locator.List(agentID)
		if err != nil {
			c.logger.WithError(err).WithField("agent", agentID).Debug("Skipping agent sessions")
			continue
		}

		sort.Slice(refs, func(i, j int) bool {
			return refs[i].FileName < refs[j].FileName
		})

		for _, ref := range refs {
			if ref.Deleted {
				continue
			}
			if ctx.Err() != nil {
				return messages
			}

			records, err := c.parser.ParseFile(ref.Path)
			if err != nil {
				c.logger.WithError(err).WithField("file", ref.Path).Warn("Skipping unreadable session file")
				continue
			}
			for _, rec := range records {
				messages = append(messages, toAgentMessage(agentID, ref.FileName, rec))
			}
		}
	}
	return messages
}

func toAgentMessage(agentID, fileName string, rec transcript.MessageRecord) AgentMessage {
	msg := AgentMessage{
		Agent: agentID,
		Type:  rec.Type,
		Model: rec.Model,
		Role:  rec.Role,
		Usage: rec.Usage,
		Data:  rec.Raw,
		File:  fileName,
	}
	if ms, ok := rec.Timestamp.Millis(); ok {
		msg.Timestamp = &ms
	}
	return msg
}
