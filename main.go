// topdown is a small top-down shooter demo: move with WASD, aim with the
// mouse, left click to shoot and middle click to reload.
//
// Usage:
//
//	topdown [--config file] [--log-level level] [--assets dir]
//	topdown defaults         - print the default configuration
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/topdown/config"
	"github.com/spaghettifunk/topdown/engine"
	"github.com/spaghettifunk/topdown/engine/audio/otoaudio"
	"github.com/spaghettifunk/topdown/engine/core"
	"github.com/spaghettifunk/topdown/engine/platform"
	"github.com/spaghettifunk/topdown/engine/renderer/opengl"
	"github.com/spaghettifunk/topdown/shooter"
)

var (
	flagConfig   string
	flagLogLevel string
	flagAssets   string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "topdown",
	Short: "Top-down shooter demo",
	Long: `A window with a player marker that follows WASD and turns toward the
mouse pointer. Left click plays the shoot sound, middle click the reload
sound, Escape or closing the window quits.

Examples:
  topdown
  topdown --assets ./data --log-level debug
  topdown --config ./topdown.toml`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.OutOrStdout().Write(config.DefaultYAML())
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a .toml, .yaml or .yml config file")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides the config file)")
	rootCmd.Flags().StringVar(&flagAssets, "assets", "", "Asset directory (overrides the config file)")

	rootCmd.AddCommand(defaultsCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagAssets != "" {
		cfg.Assets.Dir = flagAssets
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	game, _, err := shooter.NewGame(cfg)
	if err != nil {
		return err
	}
	core.SetLogLevel(game.ApplicationConfig.LogLevel)

	e, err := engine.New(game, engine.Backends{
		Platform: platform.New(),
		Renderer: opengl.New(),
		Mixer:    otoaudio.New(cfg.Audio.MaxChannels),
	})
	if err != nil {
		return err
	}

	// Termination signals cancel ctx; the loop notices at the top of its
	// next frame, also when the signal arrived during Initialize.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := e.Initialize(); err != nil {
		// Startup failures are reported in the log only; the exit status stays 0.
		core.LogError("startup failed: %s", err)
		if err := e.Shutdown(); err != nil {
			core.LogError("cleanup: %s", err)
		}
		return nil
	}

	if err := e.Run(ctx); err != nil {
		core.LogError("%s", err)
	}
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	return nil
}
