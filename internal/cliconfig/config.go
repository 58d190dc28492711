// Package cliconfig implements the cobra/viper configuration layer for
// cmd/ifengine, mirroring the teacher's cmd/cobra_cli.go: a config file
// searched on $HOME and ".", global persistent flags bound over it, and a
// best-effort .env loader run before any of it.
package cliconfig

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config is the resolved set of values cmd/ifengine's subcommands need,
// merged from (in increasing priority) config file, environment, flags.
type Config struct {
	WorldPath    string
	BehaviorRoot string
	LogLevel     string
	ListenAddr   string
}

// LoadDotEnv loads a ".env" file from the working directory if present.
// A missing file is not an error: most invocations have none.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return gotenv.Load(".env")
}

// InitViper wires the config-file search path the teacher's
// alex-config.json uses, scaled to this engine's own file name.
func InitViper() {
	viper.SetConfigName("ifengine-config")
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("IFENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("world", "world.json")
	viper.SetDefault("behavior_root", "internal/behaviors")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("listen_addr", ":8080")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "ifengine: reading config file: %v\n", err)
		}
	}
}

// Resolve reads the final values out of viper after flags have been bound.
func Resolve() Config {
	return Config{
		WorldPath:    viper.GetString("world"),
		BehaviorRoot: viper.GetString("behavior_root"),
		LogLevel:     viper.GetString("log_level"),
		ListenAddr:   viper.GetString("listen_addr"),
	}
}

// NewLogger builds the process-wide slog.Logger at levelName ("debug",
// "info", "warn", "error"), text-handler to stderr so stdout stays free
// for play-mode narration.
func NewLogger(levelName string) *slog.Logger {
	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
