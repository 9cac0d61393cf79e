// Package client talks to a running tool server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/protocol"
	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/tools"
)

// RemoteError is a failure reported by the server.
type RemoteError struct {
	Message string
	Code    tools.Code
}

func (e *RemoteError) Error() string { return e.Message }

// Client is a connection to the server. Calls are serialised, so one
// Client may be shared between goroutines.
type Client struct {
	conn     net.Conn
	maxBytes int
	mu       sync.Mutex
}

// Dial connects to a server. maxBytes bounds response frames; zero uses
// the protocol default.
func Dial(ctx context.Context, network, address string, maxBytes int) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server at %s: %w", address, err)
	}
	if maxBytes <= 0 {
		maxBytes = protocol.DefaultMaxMessageBytes
	}
	return &Client{conn: conn, maxBytes: maxBytes}, nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Execute sends cmd and waits for the response.
func (c *Client) Execute(cmd protocol.Command) (protocol.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := protocol.WriteJSON(c.conn, cmd); err != nil {
		return protocol.Response{}, fmt.Errorf("send: %w", err)
	}
	data, err := protocol.ReadFrame(c.conn, c.maxBytes)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("receive: %w", err)
	}
	var resp protocol.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return protocol.Response{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return resp, nil
}

// call executes cmd and decodes a successful result into out.
func (c *Client) call(cmd protocol.Command, out any) error {
	resp, err := c.Execute(cmd)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &RemoteError{Message: resp.Error, Code: tools.Code(resp.Code)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", cmd.Action, err)
	}
	return nil
}

// Ping checks that the server answers.
func (c *Client) Ping() error {
	return c.call(protocol.Command{Action: protocol.ActionPing}, nil)
}

// ListTools returns the server's catalog.
func (c *Client) ListTools() ([]tools.Tool, error) {
	var out []tools.Tool
	err := c.call(protocol.Command{Action: protocol.ActionList}, &out)
	return out, err
}

// Describe returns one tool's documentation.
func (c *Client) Describe(name string) (tools.Tool, error) {
	var out tools.Tool
	err := c.call(protocol.Command{
		Action: protocol.ActionDescribe,
		Params: map[string]any{"tool": name},
	}, &out)
	return out, err
}

// Run executes a tool remotely and decodes its tagged result.
func (c *Client) Run(req tools.Request) (tools.Result, error) {
	params := map[string]any{
		"tool":  req.Tool,
		"input": req.Input,
	}
	if req.Other != "" {
		params["other"] = req.Other
	}
	if len(req.Options) > 0 {
		params["options"] = req.Options
	}

	var env tools.Envelope
	if err := c.call(protocol.Command{Action: protocol.ActionRun, Params: params}, &env); err != nil {
		return nil, err
	}
	return env.Decode()
}

// Pipeline runs steps remotely on input and decodes the last result.
func (c *Client) Pipeline(input string, steps []tools.Step) (tools.Result, error) {
	var env tools.Envelope
	err := c.call(protocol.Command{
		Action: protocol.ActionPipeline,
		Params: map[string]any{"input": input, "steps": steps},
	}, &env)
	if err != nil {
		return nil, err
	}
	return env.Decode()
}
