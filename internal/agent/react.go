package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	provider "github.com/dirant/dirant/internal/provider/models"
)

// runReactLoop drives the reasoning/action/observation cycle until the
// model produces a terminal answer or the iteration budget runs out.
// Tool failures are folded back into the conversation as observations;
// only a failure of the orchestrating model itself returns an error.
func (a *Agent) runReactLoop(ctx context.Context, query string) (string, []operation, error) {
	msgs := a.assembleMessages(query)
	defs := a.registry.Definitions()

	var ops []operation

	for iteration := 1; iteration <= a.cfg.MaxIterations; iteration++ {
		a.log.Debug("reasoning iteration",
			zap.Int("iteration", iteration),
			zap.Int("budget", a.cfg.MaxIterations))

		temp := a.cfg.Temperature
		maxTokens := a.cfg.MaxTokens
		resp, err := a.provider.Generate(ctx, &provider.GenerateRequest{
			System:   a.system,
			Messages: msgs,
			Tools:    defs,
			Config:   &provider.GenerateConfig{Temperature: &temp, MaxTokens: &maxTokens},
		})
		if err != nil {
			return "", ops, err
		}

		if resp.Content.Type == provider.ResponseTypeToolCall {
			a.log.Debug("tool calls requested", zap.Int("count", len(resp.Content.ToolCalls)))

			msgs = append(msgs, provider.Message{
				Role:      "assistant",
				ToolCalls: resp.Content.ToolCalls,
			})

			results := make([]provider.ToolResult, 0, len(resp.Content.ToolCalls))
			for _, call := range resp.Content.ToolCalls {
				obs, failed := a.executeCall(ctx, call)
				ops = append(ops, operation{name: call.Name, observation: obs, failed: failed})
				results = append(results, provider.ToolResult{
					ID:      call.ID,
					Name:    call.Name,
					Content: obs,
				})
			}
			msgs = append(msgs, provider.Message{Role: "tool", ToolResults: results})
			continue
		}

		text := resp.Content.Text
		if resp.Content.Type == provider.ResponseTypeRefusal {
			text = resp.Content.RefusalReason
		}

		if requiresTools(query) {
			a.log.Warn("model answered a file operation without tools, forcing tool usage")
			msgs = append(msgs, provider.Message{Role: "assistant", Content: text})
			msgs = append(msgs, provider.Message{Role: "user", Content: correctiveInstruction})

			if iteration < a.cfg.MaxIterations {
				continue
			}
			// Budget exhausted without compliant tool use: disclose it.
			return text + noToolsDisclosure, ops, nil
		}

		// Help or non-file question, a direct answer is acceptable.
		return text, ops, nil
	}

	// Iteration budget spent on tool calls: one final synthesis pass
	// with a larger output budget, since it may reproduce file content.
	a.log.Debug("synthesizing final answer from tool results")

	msgs = append(msgs, provider.Message{Role: "user", Content: synthesisInstruction})

	temp := a.cfg.Temperature
	maxTokens := a.cfg.SynthesisMaxTokens
	final, err := a.provider.Generate(ctx, &provider.GenerateRequest{
		System:   a.system,
		Messages: msgs,
		Config:   &provider.GenerateConfig{Temperature: &temp, MaxTokens: &maxTokens},
	})
	if err != nil {
		a.log.Error("final synthesis failed", zap.Error(err))
		degraded := fmt.Sprintf("I encountered some difficulties processing your request, but I tried my best to help. The issue was: %s. Please try rephrasing your request or check if the files/directory are accessible.", err)
		return degraded, ops, nil
	}

	return final.Content.Text, ops, nil
}

// assembleMessages seeds the conversation with the replay window of
// recent turns followed by the current query.
func (a *Agent) assembleMessages(query string) []provider.Message {
	recent := a.memory.Recent()
	msgs := make([]provider.Message, 0, len(recent)*2+1)
	for _, t := range recent {
		msgs = append(msgs, provider.Message{Role: "user", Content: t.Query})
		msgs = append(msgs, provider.Message{Role: "assistant", Content: t.Response})
	}
	return append(msgs, provider.Message{Role: "user", Content: query})
}

// executeCall dispatches one tool call and renders its outcome as an
// observation string. Failures never abort the turn.
func (a *Agent) executeCall(ctx context.Context, call provider.ToolCall) (string, bool) {
	a.log.Debug("executing tool", zap.String("tool", call.Name))

	result, err := a.registry.Execute(ctx, call.Name, call.Args)
	if err != nil {
		return fmt.Sprintf("Error executing %s: %s", call.Name, err), true
	}
	if result == "" {
		return "Operation completed successfully", false
	}
	return result, false
}
