package client

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/server"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/tools"
)

func connect(t *testing.T) *Client {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "aynzo.sock")
	srv := server.New(server.Config{Network: "unix", Address: socketPath}, tools.NewRegistry(), nil)
	if err := srv.Listen(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Serve(ctx)
		close(done)
	}()

	c, err := Dial(context.Background(), "unix", socketPath, 0)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() {
		c.Close()
		cancel()
		<-done
	})
	return c
}

func TestPing(t *testing.T) {
	if err := connect(t).Ping(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestRun(t *testing.T) {
	c := connect(t)

	res, err := c.Run(tools.Request{Tool: "keyword-density", Input: "the cat sat on the mat the cat ran", Options: map[string]any{"keyword": "cat"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	d, ok := res.(*tools.DensityResult)
	if !ok {
		t.Fatalf("Expected *tools.DensityResult, got %T", res)
	}
	if d.Match == nil || d.Match.Count != 2 || d.Match.Percent != 22.22 {
		t.Errorf("Unexpected match %+v", d.Match)
	}

	res, err = c.Run(tools.Request{Tool: "text-diff", Input: "a", Other: "b"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Text() != "- a\n+ b" {
		t.Errorf("Expected %q, got %q", "- a\n+ b", res.Text())
	}
}

func TestPipeline(t *testing.T) {
	c := connect(t)

	res, err := c.Pipeline("Hello World", []tools.Step{
		{Tool: "lower-case"},
		{Tool: "find-replace", Options: map[string]any{"find": " ", "replace": "_"}},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Text() != "hello_world" {
		t.Errorf("Expected hello_world, got %q", res.Text())
	}

	_, err = c.Pipeline("x", []tools.Step{{Tool: "text-diff"}})
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.Code != tools.CodeInvalidInput {
		t.Errorf("Expected invalid_input remote error, got %v", err)
	}
}

func TestRemoteTextMatchesLocal(t *testing.T) {
	c := connect(t)
	local := tools.NewRegistry()

	page := `<html><head><title>T</title><meta name="description" content="d"></head>` +
		`<body><h1>H</h1><a href="/x">X</a><a href="/y">Y</a></body></html>`
	requests := []tools.Request{
		{Tool: "extract-links", Input: page, Options: map[string]any{"template": "{href}"}},
		{Tool: "extract-links", Input: page},
		{Tool: "meta-analyzer", Input: page},
		{Tool: "word-counter", Input: "one two. three"},
		{Tool: "keyword-density", Input: "alpha beta alpha gamma"},
		{Tool: "regex-tester", Input: "a1 b22", Options: map[string]any{"pattern": `\d+`}},
		{Tool: "text-diff", Input: "a b c", Other: "a c d", Options: map[string]any{"mode": "words"}},
		{Tool: "user-agent-parser", Input: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"},
	}

	for _, req := range requests {
		want, err := local.Run(req)
		if err != nil {
			t.Fatalf("%s: local run failed: %v", req.Tool, err)
		}
		got, err := c.Run(req)
		if err != nil {
			t.Fatalf("%s: remote run failed: %v", req.Tool, err)
		}
		if got.Text() != want.Text() {
			t.Errorf("%s: expected %q, got %q", req.Tool, want.Text(), got.Text())
		}
	}

	steps := []tools.Step{{Tool: "extract-links", Options: map[string]any{"template": "{text}"}}}
	want, err := local.Pipeline(page, steps)
	if err != nil {
		t.Fatalf("Local pipeline failed: %v", err)
	}
	got, err := c.Pipeline(page, steps)
	if err != nil {
		t.Fatalf("Remote pipeline failed: %v", err)
	}
	if got.Text() != want.Text() || got.Text() != "X\nY" {
		t.Errorf("Expected %q, got %q", want.Text(), got.Text())
	}
}

func TestRunRemoteError(t *testing.T) {
	c := connect(t)

	_, err := c.Run(tools.Request{Tool: "nope"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("Expected *RemoteError, got %T (%v)", err, err)
	}
	if remote.Code != tools.CodeUnsupported {
		t.Errorf("Expected code %q, got %q", tools.CodeUnsupported, remote.Code)
	}
}

func TestListAndDescribe(t *testing.T) {
	c := connect(t)

	list, err := c.ListTools()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(list) != len(tools.NewRegistry().Names()) {
		t.Errorf("Expected the full catalog, got %d tools", len(list))
	}

	tool, err := c.Describe("text-style")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !tool.LineWise || len(tool.Params) != 1 || !tool.Params[0].Required {
		t.Errorf("Unexpected description %+v", tool)
	}
}

func TestDialFailure(t *testing.T) {
	if _, err := Dial(context.Background(), "unix", filepath.Join(t.TempDir(), "missing.sock"), 0); err == nil {
		t.Error("Expected error dialing a missing socket")
	}
}
