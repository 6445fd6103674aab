package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/vino/internal/config"
	"github.com/jeanpaul/vino/internal/headless"
	"github.com/jeanpaul/vino/internal/rating"
	"github.com/jeanpaul/vino/internal/tui"
	"github.com/jeanpaul/vino/pkg/version"
)

func main() {
	fileFlag := flag.String("file", "", "Ratings file (overrides config)")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("vino %s (%s)\n", version.Version, version.Commit)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}

	dataFile := cfg.ResolvedDataFile()
	if *fileFlag != "" {
		dataFile = *fileFlag
	}

	store, err := rating.NewStore(dataFile)
	if err != nil {
		fatal("%s", err)
	}
	svc := rating.NewService(store)

	// Subcommands run one operation headless; no args launches the TUI.
	args := flag.Args()
	if len(args) > 0 {
		runner := headless.New(svc, cfg, os.Stdout)
		var err error
		switch args[0] {
		case "add":
			if len(args) < 3 {
				fatal("usage: vino add <name> <score>")
			}
			err = runner.Add(args[1], args[2])
		case "list":
			err = runner.List()
		case "delete":
			sel := ""
			if len(args) > 1 {
				sel = args[1]
			}
			err = runner.Delete(sel)
		case "init":
			path, werr := config.WriteDefault()
			if werr != nil {
				fatal("%s", werr)
			}
			fmt.Printf("Wrote %s\n", path)
			return
		case "help":
			showHelp()
			return
		default:
			fatal("unknown command: %s (try 'vino help')", args[0])
		}
		if err != nil {
			handleRunError(cfg, dataFile, err)
		}
		return
	}

	model := tui.NewModel(cfg, svc)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		fatal("%s", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		handleRunError(cfg, dataFile, m.Err())
	}
}

// handleRunError reports an operation failure and picks the exit code.
// Input mistakes exit 1 with a plain message; a corrupt store is
// special-cased so the user is never left with a silently clobbered
// file.
func handleRunError(cfg *config.Config, dataFile string, err error) {
	var corrupt *rating.CorruptError
	if errors.As(err, &corrupt) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", corrupt)
		if cfg.BackupOnCorrupt {
			backup := fmt.Sprintf("%s.corrupt-%d", dataFile, time.Now().Unix())
			if mvErr := os.Rename(dataFile, backup); mvErr != nil {
				fmt.Fprintf(os.Stderr, "Could not move the file aside: %s\n", mvErr)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Moved the corrupt file to %s; the next run starts fresh.\n", backup)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "Refusing to touch the file. Inspect it, or set backup_on_corrupt: true to have it moved aside.")
		os.Exit(1)
	}
	fatal("%s", err)
}

func showHelp() {
	fmt.Print(`vino — personal wine-rating tracker

Usage:
  vino                       Launch the interactive menu
  vino add <name> <score>    Record a rating (score 0–10, one decimal)
  vino list                  Print all ratings in stored order
  vino delete <n>            Delete the rating at position n
  vino init                  Write a starter config file
  vino help                  Show this help

Flags:
  -file <path>   Use a specific ratings file
  -version       Print version
`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
