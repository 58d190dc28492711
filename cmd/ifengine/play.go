package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/ifengine/internal/consoleinput"
	"github.com/sbenjam1n/ifengine/internal/engine/state"
	"github.com/sbenjam1n/ifengine/internal/enginebuild"
)

func newPlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play [world-file]",
		Short: "Drive a world from the terminal with a minimal word-split command line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := worldPathArg(args)
			if path == "" {
				return fmt.Errorf("no world file given (pass a path or set --world)")
			}

			world, err := enginebuild.LoadWorldFile(path)
			if err != nil {
				return err
			}

			savePath := path
			save := func() (string, error) {
				data, err := state.SaveWorld(world)
				if err != nil {
					return "", err
				}
				if err := os.WriteFile(savePath, data, 0o644); err != nil {
					return "", err
				}
				return savePath, nil
			}
			load := func() error {
				reloaded, err := enginebuild.LoadWorldFile(savePath)
				if err != nil {
					return err
				}
				*world = *reloaded
				return nil
			}

			engine, err := enginebuild.Build(world, save, load)
			if err != nil {
				return fmt.Errorf("play: %w", err)
			}

			return runREPL(engine)
		},
	}
}

func runREPL(engine *enginebuild.Engine) error {
	narration := color.New(color.FgWhite).SprintFunc()
	warn := color.New(color.FgRed).SprintFunc()
	prompt := color.New(color.FgCyan).SprintFunc()

	fmt.Println(narration("Type a command (e.g. \"look\", \"take key\", \"open door\"). Ctrl-D to quit."))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt("> "))
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}

		raw := consoleinput.ParseLine(scanner.Text())
		if raw == nil {
			continue
		}

		reply := engine.Handler.HandleMessage(raw)
		printReply(reply, narration, warn)

		if reply["action"] == "quit" && reply["success"] == true {
			return nil
		}
	}
}

func printReply(reply map[string]any, narration, warn func(a ...any) string) {
	if msg, ok := reply["message"].(string); ok {
		fmt.Println(narration(msg))
	}
	if errObj, ok := reply["error"].(map[string]any); ok {
		if msg, ok := errObj["message"].(string); ok {
			fmt.Println(warn(msg))
		}
	}
	if beats, ok := reply["turn_phase_messages"].([]string); ok {
		for _, beat := range beats {
			fmt.Println(narration(beat))
		}
	}
}
