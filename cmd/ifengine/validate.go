package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sbenjam1n/ifengine/internal/enginebuild"
)

var (
	validateGreen = color.New(color.FgGreen).SprintFunc()
	validateRed   = color.New(color.FgRed).SprintFunc()
	validateGray  = color.New(color.FgHiBlack).SprintFunc()
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [world-file]",
		Short: "Run structural and hook validation against a world file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := worldPathArg(args)
			if path == "" {
				return fmt.Errorf("no world file given (pass a path or set --world)")
			}

			world, err := enginebuild.LoadWorldFile(path)
			if err != nil {
				fmt.Println(validateRed("✗ " + err.Error()))
				return err
			}

			engine, err := enginebuild.Build(world, nil, nil)
			if err != nil {
				fmt.Println(validateRed("✗ " + err.Error()))
				return err
			}

			fmt.Println(validateGreen(fmt.Sprintf("✓ %s is valid (%d modules loaded)", path, len(engine.Reg.ModuleNames()))))
			for _, name := range engine.Reg.ModuleNames() {
				fmt.Println(validateGray("  - " + name))
			}
			return nil
		},
	}
}
