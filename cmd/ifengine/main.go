// Command ifengine is the cobra/viper CLI around the interactive-fiction
// engine core: validate a world file, serve it over the host transport,
// or play it from a terminal, mirroring the teacher's cmd/cobra_cli.go
// construction (a root command plus a fixed set of subcommand
// constructors, global flags bound through viper).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sbenjam1n/ifengine/internal/cliconfig"
)

func main() {
	if err := cliconfig.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "ifengine: warning: failed to load .env: %v\n", err)
	}

	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ifengine",
		Short: "Interactive-fiction engine host",
		Long: `ifengine hosts the interactive-fiction engine core against a world file:

  ifengine validate world.json          # run structural + hook validation
  ifengine serve world.json             # start the REST/websocket host
  ifengine play world.json              # drive the engine from a terminal`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cliconfig.InitViper()
		},
	}

	root.PersistentFlags().String("world", "", "Path to the world-file JSON document")
	root.PersistentFlags().String("behavior-root", "", "Directory bundled behavior modules are loaded from (reserved for future on-disk modules)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	root.PersistentFlags().String("listen", "", "Listen address for the serve subcommand")
	_ = viper.BindPFlag("world", root.PersistentFlags().Lookup("world"))
	_ = viper.BindPFlag("behavior_root", root.PersistentFlags().Lookup("behavior-root"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("listen_addr", root.PersistentFlags().Lookup("listen"))

	root.AddCommand(newValidateCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newPlayCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// worldPathArg resolves the world file: the positional arg if given,
// otherwise the bound --world/config/env value.
func worldPathArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return cliconfig.Resolve().WorldPath
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the ifengine version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("ifengine (interactive-fiction engine host) dev")
			return nil
		},
	}
}
