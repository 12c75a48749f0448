package main

import (
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/erraggy/oasextract"
	"github.com/erraggy/oasextract/cmd/oasextract/commands"
)

// commandNames lists the subcommands offered as typo suggestions.
var commandNames = []string{"extract", "verify", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasextract %s\n", oasextract.Version())
		if len(os.Args) > 2 && os.Args[2] == "--full" {
			fmt.Println(oasextract.BuildInfo())
		}
	case "help", "-h", "--help":
		printUsage()
	case "extract":
		err = commands.HandleExtract(os.Args[2:])
	case "verify":
		err = commands.HandleVerify(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		commands.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			commands.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		commands.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		commands.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.ExitCode(err))
	}
}

// suggestCommand returns the closest command name within an edit distance
// of two, or "".
func suggestCommand(input string) string {
	dmp := diffmatchpatch.New()
	best, bestDist := "", 3
	for _, name := range commandNames {
		dist := dmp.DiffLevenshtein(dmp.DiffMain(input, name, false))
		if dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func printUsage() {
	commands.Writef(os.Stdout, `oasextract - publish the external subset of an OpenAPI document

Usage:
  oasextract <command> [flags] [args]

Commands:
  extract   Extract the external paths and the schemas they reach
  verify    Check an extracted document for dangling refs, leaks and idempotence
  mcp       Run the MCP server over stdio
  version   Show version information (--full for build details)
  help      Show this help message

Configuration:
  Settings are read from --config, ./oasextract.yaml or
  ~/.config/oasextract/config.yaml, then OASEXTRACT_* environment variables.
  Command flags override both.

Examples:
  oasextract extract openapi.yaml -o external.yaml
  oasextract extract --include /public/ --prefix /partner/ openapi.json
  cat openapi.yaml | oasextract extract -q - > external.yaml
  oasextract verify --source openapi.yaml --structural external.yaml

Run 'oasextract <command> --help' for more information on a command.
`)
}
