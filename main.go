package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/plotpoint/internal/cli"
	"github.com/mrlokans/plotpoint/internal/config"
	"github.com/mrlokans/plotpoint/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every subcommand in internal/cli.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "run" command, start the interactive session
	if len(os.Args) < 2 || os.Args[1] == "run" {
		cfg := config.NewConfig()
		if err := entrypoint.Run(cfg, Version); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "create-admin":
		cmd = cli.NewCreateAdminCommand(config.NewConfig())
	case "import-catalog":
		cmd = cli.NewImportCatalogCommand(config.NewConfig())
	case "export-shelf":
		cmd = cli.NewExportShelfCommand(config.NewConfig())
	case "version":
		fmt.Printf("plotpoint %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run              Start the interactive session (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  create-admin     Create an administrator account\n")
	fmt.Fprintf(os.Stderr, "  import-catalog   Import books and tags from a JSON file\n")
	fmt.Fprintf(os.Stderr, "  export-shelf     Export a user's shelf to markdown\n")
	fmt.Fprintf(os.Stderr, "  version          Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
