package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/protocol"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/tools"
)

// RunResult is the result of a run command: the tagged envelope plus the
// plain text rendering.
type RunResult struct {
	tools.Envelope
	Text string `json:"text"`
}

// Execute decodes one JSON command and returns its response. A panicking
// tool becomes an internal error response.
func (s *Server) Execute(data []byte) (resp protocol.Response) {
	start := time.Now()
	var cmd protocol.Command
	attrs := []any{}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("command_panic", slog.Any("panic", r))
			resp = protocol.Failure(fmt.Sprintf("internal error: %v", r), string(tools.CodeInternal))
		}
		attrs = append(attrs,
			slog.String("action", cmd.Action),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		if !resp.Success {
			attrs = append(attrs, slog.String("error", resp.Error), slog.String("code", resp.Code))
			s.log.Warn("command_failed", attrs...)
			return
		}
		s.log.Info("command_done", attrs...)
	}()

	if err := json.Unmarshal(data, &cmd); err != nil {
		return protocol.Failure("invalid JSON: "+err.Error(), string(tools.CodeInvalidInput))
	}

	switch cmd.Action {
	case protocol.ActionRun:
		tool := getStr(cmd.Params, "tool", "")
		attrs = append(attrs, slog.String("tool", tool))
		return s.cmdRun(cmd.Params)
	case protocol.ActionList:
		return protocol.Success(s.registry.List())
	case protocol.ActionDescribe:
		return s.cmdDescribe(cmd.Params)
	case protocol.ActionPipeline:
		return s.cmdPipeline(cmd.Params)
	case protocol.ActionPing:
		return protocol.Success("pong")
	default:
		return protocol.Failure("unknown action: "+cmd.Action, string(tools.CodeUnsupported))
	}
}

func (s *Server) cmdRun(params map[string]any) protocol.Response {
	req := tools.Request{
		Tool:  getStr(params, "tool", ""),
		Input: getStr(params, "input", ""),
		Other: getStr(params, "other", ""),
	}
	if req.Tool == "" {
		return protocol.Failure("missing required parameter: tool", string(tools.CodeInvalidInput))
	}
	if raw, ok := params["options"]; ok && raw != nil {
		opts, ok := raw.(map[string]any)
		if !ok {
			return protocol.Failure("options must be an object", string(tools.CodeInvalidInput))
		}
		req.Options = opts
	}

	res, err := s.registry.Run(req)
	if err != nil {
		return failure(err)
	}
	env, err := tools.Wrap(res)
	if err != nil {
		return failure(err)
	}
	return protocol.Success(RunResult{Envelope: env, Text: res.Text()})
}

// cmdPipeline runs {"input": ..., "steps": [{"tool": ..., "options": {...}}]}.
func (s *Server) cmdPipeline(params map[string]any) protocol.Response {
	raw, ok := params["steps"].([]any)
	if !ok || len(raw) == 0 {
		return protocol.Failure("missing required parameter: steps", string(tools.CodeInvalidInput))
	}
	steps := make([]tools.Step, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return protocol.Failure(fmt.Sprintf("step %d must be an object", i+1), string(tools.CodeInvalidInput))
		}
		step := tools.Step{Tool: getStr(m, "tool", "")}
		if opts, ok := m["options"].(map[string]any); ok {
			step.Options = opts
		}
		steps = append(steps, step)
	}

	res, err := s.registry.Pipeline(getStr(params, "input", ""), steps)
	if err != nil {
		return failure(err)
	}
	env, err := tools.Wrap(res)
	if err != nil {
		return failure(err)
	}
	return protocol.Success(RunResult{Envelope: env, Text: res.Text()})
}

func (s *Server) cmdDescribe(params map[string]any) protocol.Response {
	name := getStr(params, "tool", "")
	if name == "" {
		return protocol.Failure("missing required parameter: tool", string(tools.CodeInvalidInput))
	}
	t, err := s.registry.Describe(name)
	if err != nil {
		return failure(err)
	}
	return protocol.Success(t)
}

func failure(err error) protocol.Response {
	return protocol.Failure(err.Error(), string(tools.Classify(err)))
}

// getStr reads a string parameter. Non-string scalars are formatted.
func getStr(params map[string]any, key, def string) string {
	val, ok := params[key]
	if !ok || val == nil {
		return def
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprint(val)
}
