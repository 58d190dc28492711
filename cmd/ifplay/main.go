package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sbenjam1n/ifengine/internal/consoleinput"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/enginebuild"
)

// isTTY mirrors the teacher's term.IsTerminal gate in cmd/cobra_cli.go,
// built on mattn/go-isatty instead of golang.org/x/term since isatty is
// already part of this module's dependency graph via fatih/color.
func isTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: ifplay <world-file>")
		os.Exit(1)
	}
	path := os.Args[1]

	world, err := enginebuild.LoadWorldFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ifplay: %v\n", err)
		os.Exit(1)
	}

	save := func() (string, error) {
		data, err := state.SaveWorld(world)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", err
		}
		return path, nil
	}
	load := func() error {
		reloaded, err := enginebuild.LoadWorldFile(path)
		if err != nil {
			return err
		}
		*world = *reloaded
		return nil
	}

	engine, err := enginebuild.Build(world, save, load)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ifplay: %v\n", err)
		os.Exit(1)
	}

	if !isTTY() {
		runFallback(engine)
		return
	}

	program := tea.NewProgram(newModel(engine), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ifplay: %v\n", err)
		os.Exit(1)
	}
}

// runFallback is the plain-ANSI path for environments bubbletea can't
// attach a TTY to (piped input, CI), the same shape as the teacher's
// isTTY()-gated fallback to single-prompt/help mode.
func runFallback(engine *enginebuild.Engine) {
	narration := color.New(color.FgWhite).SprintFunc()
	warn := color.New(color.FgRed).SprintFunc()

	fmt.Println(narration("Welcome to " + engine.World.Metadata.Title + "."))
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		raw := consoleinput.ParseLine(scanner.Text())
		if raw == nil {
			continue
		}
		reply := engine.Handler.HandleMessage(raw)
		if msg, ok := reply["message"].(string); ok {
			fmt.Println(narration(msg))
		}
		if errObj, ok := reply["error"].(map[string]any); ok {
			if msg, ok := errObj["message"].(string); ok {
				fmt.Println(warn(msg))
			}
		}
	}
}
