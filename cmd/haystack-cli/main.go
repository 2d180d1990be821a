// haystack-cli is a command-line client for Project Haystack servers.
package main

import (
	"fmt"
	"os"

	"github.com/haystack-rest/haystack-go/cmd/haystack-cli/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "about":
		exitCode = commands.RunAbout(args, os.Stdout, os.Stderr)
	case "ops":
		exitCode = commands.RunOps(args, os.Stdout, os.Stderr)
	case "formats":
		exitCode = commands.RunFormats(args, os.Stdout, os.Stderr)
	case "read":
		exitCode = commands.RunRead(args, os.Stdout, os.Stderr)
	case "eval":
		exitCode = commands.RunEval(args, os.Stdout, os.Stderr)
	case "nav":
		exitCode = commands.RunNav(args, os.Stdout, os.Stderr)
	case "his-read":
		exitCode = commands.RunHisRead(args, os.Stdout, os.Stderr)
	case "shell":
		exitCode = commands.RunShell(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("haystack-cli version 0.1.0")
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`haystack-cli - Project Haystack command-line client

Usage:
  haystack-cli <command> [options] [args...]

Commands:
  about      Show server identity and capabilities
  ops        List the operations the server supports
  formats    List the MIME formats the server supports
  read       Read records by filter expression
  eval       Evaluate an Axon expression
  nav        Navigate the server's entity tree
  his-read   Read history samples for a point
  shell      Start an interactive expression shell
  version    Show version information
  help       Show this help

Options (all commands):
  --config <path>  Read settings from a YAML file
  --json           Output grids as Hayson JSON instead of Zinc
  --csv            Output grids as CSV instead of Zinc

Connection settings come from the config file or from the
HAYSTACK_URL, HAYSTACK_USERNAME and HAYSTACK_PASSWORD environment
variables.

Examples:
  haystack-cli about
  haystack-cli read 'point and temp' --limit 10
  haystack-cli eval 'readAll(site)'
  haystack-cli his-read @p.outsideTemp today`)
}
