// Package repl is the interactive shell over the tool catalog, either
// in-process or through a running server.
package repl

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nakulaynzocto/tools-aynzo-sub002/internal/tools"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("exit")

// endOfInput terminates multi-line input.
const endOfInput = "."

// Backend runs catalog operations. *client.Client satisfies it.
type Backend interface {
	ListTools() ([]tools.Tool, error)
	Describe(name string) (tools.Tool, error)
	Run(req tools.Request) (tools.Result, error)
	Pipeline(input string, steps []tools.Step) (tools.Result, error)
}

// Local runs tools in-process.
type Local struct {
	Registry *tools.Registry
}

func (l Local) ListTools() ([]tools.Tool, error) { return l.Registry.List(), nil }

func (l Local) Describe(name string) (tools.Tool, error) { return l.Registry.Describe(name) }

func (l Local) Run(req tools.Request) (tools.Result, error) { return l.Registry.Run(req) }

func (l Local) Pipeline(input string, steps []tools.Step) (tools.Result, error) {
	return l.Registry.Pipeline(input, steps)
}

// Session executes commands against a backend. readLine supplies the
// lines of multi-line input and returns io.EOF when input runs out.
type Session struct {
	backend   Backend
	formatter *Formatter
	readLine  func() (string, error)
}

// NewSession creates a session writing to out.
func NewSession(backend Backend, out io.Writer, useColor bool, readLine func() (string, error)) *Session {
	return &Session{
		backend:   backend,
		formatter: NewFormatter(out, useColor),
		readLine:  readLine,
	}
}

// Execute runs one parsed command. Failures are printed; only ErrExit is
// returned.
func (s *Session) Execute(cmd *Command) error {
	var err error
	switch cmd.Verb {
	case "list", "ls":
		err = s.handleList(cmd)
	case "describe", "info":
		err = s.handleDescribe(cmd)
	case "run":
		err = s.handleRun(cmd)
	case "pipe":
		err = s.handlePipe(cmd)
	case "help", "?":
		s.showHelp()
	case "quit", "exit":
		return ErrExit
	case "clear":
		s.formatter.PrintText("\033[2J\033[H")
	default:
		s.formatter.PrintError(fmt.Sprintf("Unknown command: %s", cmd.Verb))
		s.formatter.PrintInfo("Type 'help' for available commands")
	}
	if err != nil {
		s.formatter.PrintError(err.Error())
	}
	return nil
}

func (s *Session) handleList(cmd *Command) error {
	list, err := s.backend.ListTools()
	if err != nil {
		return err
	}
	category := ""
	if len(cmd.Args) > 0 {
		category = strings.ToLower(cmd.Args[0])
	}

	var rows [][]string
	for _, t := range list {
		if category != "" && t.Category != category {
			continue
		}
		rows = append(rows, []string{t.Name, t.Category, t.Summary})
	}
	if len(rows) == 0 {
		return fmt.Errorf("no tools in category %q", category)
	}
	s.formatter.PrintTable([]string{"TOOL", "CATEGORY", "SUMMARY"}, rows)
	return nil
}

func (s *Session) handleDescribe(cmd *Command) error {
	if len(cmd.Args) < 1 {
		return errors.New("describe requires a tool name")
	}
	t, err := s.backend.Describe(cmd.Args[0])
	if err != nil {
		return err
	}

	s.formatter.PrintInfo(fmt.Sprintf("%s (%s): %s", t.Name, t.Category, t.Summary))
	if t.NeedsOther {
		s.formatter.PrintText("Reads two texts: the input, then the text to compare with.")
	}
	if t.LineWise {
		s.formatter.PrintText("Accepts line_based=true to run once per line.")
	}
	if len(t.Params) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(t.Params))
	for _, p := range t.Params {
		req := ""
		if p.Required {
			req = "yes"
		}
		rows = append(rows, []string{p.Name, p.Type, p.Default, req, p.Summary})
	}
	s.formatter.PrintTable([]string{"OPTION", "TYPE", "DEFAULT", "REQUIRED", "SUMMARY"}, rows)
	return nil
}

// handleRun runs "run <tool> [key=value...]". Input is read until a lone
// "." unless given inline after "--".
func (s *Session) handleRun(cmd *Command) error {
	if len(cmd.Args) < 1 {
		return errors.New("run requires a tool name")
	}
	t, err := s.backend.Describe(cmd.Args[0])
	if err != nil {
		return err
	}
	opts, err := tools.ParseOptions(cmd.Args[1:])
	if err != nil {
		return err
	}

	req := tools.Request{Tool: t.Name, Options: opts}
	if cmd.HasInline {
		req.Input = cmd.Inline
	} else {
		s.formatter.PrintInfo("Enter input (end with a lone .):")
		if req.Input, err = s.readBlock(); err != nil {
			return err
		}
	}
	if t.NeedsOther {
		s.formatter.PrintInfo("Enter the text to compare with (end with a lone .):")
		if req.Other, err = s.readBlock(); err != nil {
			return err
		}
	}

	res, err := s.backend.Run(req)
	if err != nil {
		return err
	}
	s.formatter.PrintText(res.Text())
	return nil
}

// handlePipe runs "pipe <tool> [k=v...] | <tool> [k=v...]".
func (s *Session) handlePipe(cmd *Command) error {
	var steps []tools.Step
	var fields []string
	flush := func() error {
		if len(fields) == 0 {
			return errors.New("empty pipeline step")
		}
		step, err := tools.ParseStep(fields)
		if err != nil {
			return err
		}
		steps = append(steps, step)
		fields = nil
		return nil
	}
	for _, arg := range cmd.Args {
		if arg == "|" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		fields = append(fields, arg)
	}
	if err := flush(); err != nil {
		return errors.New("pipe requires at least one tool")
	}

	input := cmd.Inline
	if !cmd.HasInline {
		s.formatter.PrintInfo("Enter input (end with a lone .):")
		var err error
		if input, err = s.readBlock(); err != nil {
			return err
		}
	}
	res, err := s.backend.Pipeline(input, steps)
	if err != nil {
		return err
	}
	s.formatter.PrintText(res.Text())
	return nil
}

func (s *Session) readBlock() (string, error) {
	if s.readLine == nil {
		return "", errors.New("no input source")
	}
	var lines []string
	for {
		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if line == endOfInput {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) showHelp() {
	s.formatter.PrintTable([]string{"COMMAND", "DESCRIPTION"}, [][]string{
		{"list [category]", "list tools, optionally of one category"},
		{"describe <tool>", "show a tool's options"},
		{"run <tool> [k=v...]", "run a tool; input follows, ended by a lone ."},
		{"run <tool> [k=v...] -- text", "run a tool on inline text"},
		{"pipe <tool> [k=v...] | <tool> ...", "chain tools; input as for run"},
		{"clear", "clear the screen"},
		{"help", "show this help"},
		{"quit", "leave the shell"},
	})
}

// completer offers command verbs and tool names.
func completer(names []string) *readline.PrefixCompleter {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	toolNames := func(string) []string { return sorted }
	return readline.NewPrefixCompleter(
		readline.PcItem("list"),
		readline.PcItem("describe", readline.PcItemDynamic(toolNames)),
		readline.PcItem("run", readline.PcItemDynamic(toolNames)),
		readline.PcItem("pipe", readline.PcItemDynamic(toolNames)),
		readline.PcItem("help"),
		readline.PcItem("clear"),
		readline.PcItem("quit"),
	)
}

// Run starts the interactive loop on the terminal.
func Run(backend Backend, banner string, useColor bool) error {
	var names []string
	if list, err := backend.ListTools(); err == nil {
		for _, t := range list {
			names = append(names, t.Name)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "aynzo> ",
		AutoComplete:    completer(names),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	readLine := func() (string, error) {
		rl.SetPrompt("")
		defer rl.SetPrompt("aynzo> ")
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return line, err
	}
	session := NewSession(backend, rl.Stdout(), useColor, readLine)

	session.formatter.PrintInfo(banner)
	session.formatter.PrintInfo("Type 'help' for available commands")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		} else if err != nil {
			break
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			continue
		}
		if err := session.Execute(cmd); errors.Is(err, ErrExit) {
			break
		}
	}

	session.formatter.PrintInfo("Goodbye!")
	return nil
}
