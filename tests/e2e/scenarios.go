package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// setupMockOpenclawDir creates a root directory with a roster and session logs:
// "main" is active, "helper" was last seen two hours ago in a soft-deleted
// log, "broken" has an undecodable log and "ghost" has no sessions at all.
func setupMockOpenclawDir(ctx *harness.Context) error {
	root := ctx.NewDir("openclaw")

	roster := `{"agents":{
  "defaults":{"model":{"primary":"anthropic/claude-sonnet-4-6"}},
  "list":[{"id":"main","model":"anthropic/claude-opus-4-6"},{"id":"helper"},{"id":"broken"},{"id":"ghost"}]
}}`
	if err := fs.WriteString(filepath.Join(root, "openclaw.json"), roster); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}

	now := time.Now()
	sessions := map[string]map[string]string{
		"main": {
			"current.jsonl": fmt.Sprintf(
				`{"type":"message","timestamp":%d,"message":{"role":"user","content":"hi"}}`+"\n"+
					`{"type":"message","timestamp":"%s","message":{"role":"assistant","model":"claude-opus-4-6","usage":{"input":1000000,"output":1000}}}`+"\n",
				now.Add(-2*time.Minute).UnixMilli(), now.Add(-time.Minute).UTC().Format(time.RFC3339)),
		},
		"helper": {
			"old.jsonl": fmt.Sprintf(`{"type":"message","timestamp":%d}`+"\n", now.Add(-48*time.Hour).UnixMilli()),
			"newer.jsonl.deleted.1700000000": fmt.Sprintf(
				`{"type":"message","timestamp":%d,"message":{"role":"assistant","model":"claude-haiku-4-5","usage":{"input":10,"output":10}}}`+"\n",
				now.Add(-2*time.Hour).UnixMilli()),
		},
		"broken": {
			"bad.jsonl": "\xff\xfe not utf-8\n",
		},
	}

	for agent, files := range sessions {
		dir := filepath.Join(root, "agents", agent, "sessions")
		if err := fs.CreateDir(dir); err != nil {
			return err
		}
		for name, content := range files {
			if err := fs.WriteString(filepath.Join(dir, name), content); err != nil {
				return fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
	}

	// The deleted log must be the newest candidate for helper.
	oldPath := filepath.Join(root, "agents", "helper", "sessions", "old.jsonl")
	past := now.Add(-48 * time.Hour)
	if err := os.Chtimes(oldPath, past, past); err != nil {
		return err
	}

	ctx.Set("openclaw_root", root)
	ctx.Set("mock_home", ctx.NewDir("home"))
	return nil
}

type runResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runAgstatus runs the binary against the mock root with an isolated HOME.
func runAgstatus(ctx *harness.Context, args ...string) (runResult, error) {
	bin, err := FindProjectBinary()
	if err != nil {
		return runResult{}, err
	}
	args = append(args, "--root", ctx.GetString("openclaw_root"))
	cmd := command.New(bin, args...).Env("HOME=" + ctx.GetString("mock_home"))
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return runResult{Stdout: result.Stdout, Stderr: result.Stderr, ExitCode: result.ExitCode}, nil
}

// AgstatusStatusScenario tests the 'agstatus status' command
func AgstatusStatusScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agstatus-status-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock openclaw directory", setupMockOpenclawDir),
			harness.NewStep("Run 'agstatus status --json'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "status", "--json")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agstatus status --json failed: %s", result.Stderr)
				}

				var statuses []map[string]interface{}
				if err := json.Unmarshal([]byte(result.Stdout), &statuses); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				if err := assert.Equal(4, len(statuses), "Should report every roster agent"); err != nil {
					return err
				}

				want := map[string]string{"main": "active", "helper": "offline", "broken": "error", "ghost": "offline"}
				for _, s := range statuses {
					name, _ := s["name"].(string)
					if err := assert.Equal(want[name], s["status"], "status of "+name); err != nil {
						return err
					}
				}

				if err := assert.Equal("claude-opus-4-6", statuses[0]["model"], "Should strip the provider prefix"); err != nil {
					return err
				}
				if err := assert.Equal(true, statuses[1]["sessionDeleted"], "Should read the soft-deleted log"); err != nil {
					return err
				}
				return assert.Equal(nil, statuses[3]["lastActivity"], "Agent without sessions has no activity")
			}),
			harness.NewStep("Run 'agstatus status'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "status", "--no-cache")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, result.ExitCode, "agstatus status should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "LAST ACTIVITY", "Should print table header"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "1m ago", "Should render relative age"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "not valid UTF-8", "Should print the error detail")
			}),
		},
	}
}

// AgstatusLatestScenario tests the 'agstatus latest' command
func AgstatusLatestScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agstatus-latest-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock openclaw directory", setupMockOpenclawDir),
			harness.NewStep("Run 'agstatus latest helper'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "latest", "helper")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, result.ExitCode, "agstatus latest should exit successfully"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "newer.jsonl.deleted.1700000000 (deleted)", "Should pick the newest log")
			}),
			harness.NewStep("Run 'agstatus latest ghost'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "latest", "ghost")
				if err != nil {
					return err
				}
				if result.ExitCode == 0 {
					return fmt.Errorf("expected failure for agent without sessions")
				}
				return assert.Contains(result.Stderr, "no session file found", "Should explain the failure")
			}),
		},
	}
}

// AgstatusMessagesScenario tests the 'agstatus messages' command
func AgstatusMessagesScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agstatus-messages-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock openclaw directory", setupMockOpenclawDir),
			harness.NewStep("Run 'agstatus messages --json'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "messages", "--json")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agstatus messages --json failed: %s", result.Stderr)
				}

				var messages []map[string]interface{}
				if err := json.Unmarshal([]byte(result.Stdout), &messages); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				// Soft-deleted logs are not part of the message listing.
				return assert.Equal(3, len(messages), "Should list messages from active logs only")
			}),
			harness.NewStep("Run 'agstatus messages --agent main --limit 1'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "messages", "--agent", "main", "--limit", "1")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, result.ExitCode, "agstatus messages should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "assistant", "Should show the newest message"); err != nil {
					return err
				}
				return assert.NotContains(result.Stdout, "helper", "Should filter by agent")
			}),
		},
	}
}

// AgstatusUsageScenario tests the 'agstatus usage' command
func AgstatusUsageScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agstatus-usage-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock openclaw directory", setupMockOpenclawDir),
			harness.NewStep("Run 'agstatus usage'", func(ctx *harness.Context) error {
				result, err := runAgstatus(ctx, "usage")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, result.ExitCode, "agstatus usage should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "COST (USD)", "Should print table header"); err != nil {
					return err
				}
				// 1M input tokens at 15/M plus 1000 output tokens at 45/M.
				return assert.Contains(result.Stdout, "15.0450", "Should price opus usage")
			}),
		},
	}
}
