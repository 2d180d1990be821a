package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/haystack-rest/haystack-go/pkg/session"
	"github.com/haystack-rest/haystack-go/pkg/value"
)

// RunShell runs the interactive expression shell.
func RunShell(args []string, stdout, stderr io.Writer) int {
	opts, err := parseCommonArgs("shell", args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	e, err := buildEnv(opts, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer e.closer()

	ctx := context.Background()
	if err := e.client.Open(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCallError
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          e.client.Session().Project() + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	sh := &shell{env: e, rl: rl, json: opts.JSON}
	sh.run(ctx)
	return exitSuccess
}

// shell holds the interactive loop state.
type shell struct {
	env  *env
	rl   *readline.Instance
	json bool
}

// run reads lines until EOF or quit. Any line that is not a built-in
// command is evaluated as an Axon expression.
func (s *shell) run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "about":
			s.cmdAbout(ctx)

		case "ops":
			s.showGrid(s.env.client.Ops(ctx))

		case "formats":
			s.showGrid(s.env.client.Formats(ctx))

		case "read", "r":
			s.cmdRead(ctx, args)

		case "nav":
			s.cmdNav(ctx, args)

		case "his", "his-read":
			s.cmdHisRead(ctx, args)

		case "json":
			s.json = !s.json
			fmt.Fprintf(s.rl.Stdout(), "Output format: %s\n", s.format())

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			s.showGrid(s.env.client.Eval(ctx, input))
		}
	}
}

func (s *shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Haystack Shell Commands:
  about              - Show server identity
  ops                - List supported operations
  formats            - List supported MIME formats
  read <filter>      - Read records by filter
  nav [id]           - Navigate the entity tree
  his <id> <range>   - Read history samples
  json               - Toggle Zinc/Hayson output
  help               - Show this help
  quit               - Exit shell

Anything else is evaluated as an Axon expression:
  readAll(site)
  read(point and temp).hisRead(yesterday)`)
}

func (s *shell) format() string {
	if s.json {
		return "hayson"
	}
	return "zinc"
}

func (s *shell) cmdAbout(ctx context.Context) {
	about, err := s.env.client.About(ctx)
	if err != nil {
		s.showError(err)
		return
	}
	writeDict(s.rl.Stdout(), about)
}

func (s *shell) cmdRead(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: read <filter>")
		return
	}
	filter := strings.Join(args, " ")
	s.showGrid(s.env.client.Read(ctx, filter, 0))
}

func (s *shell) cmdNav(ctx context.Context, args []string) {
	var navID value.Value
	if len(args) > 0 {
		ref, err := parseRef(args[0])
		if err != nil {
			s.showError(err)
			return
		}
		navID = ref
	}
	s.showGrid(s.env.client.Nav(ctx, navID))
}

func (s *shell) cmdHisRead(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: his <id> <range>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: his @p.outsideTemp today")
		return
	}
	id, err := parseRef(args[0])
	if err != nil {
		s.showError(err)
		return
	}
	r, err := parseHisRange(args[1])
	if err != nil {
		s.showError(err)
		return
	}
	s.showGrid(s.env.client.HisRead(ctx, id, r))
}

// showGrid prints a call result or its error.
func (s *shell) showGrid(g *value.Grid, err error) {
	if err != nil {
		s.showError(err)
		return
	}
	if err := writeGrid(s.rl.Stdout(), g, commonOptions{JSON: s.json}); err != nil {
		s.showError(err)
	}
}

func (s *shell) showError(err error) {
	var opErr *session.OpError
	if errors.As(err, &opErr) && opErr.Trace != "" {
		fmt.Fprintf(s.rl.Stdout(), "Error: %s\n%s\n", opErr.Dis, opErr.Trace)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
}
