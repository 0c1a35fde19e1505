package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"portfolio3d/internal/config"
	"portfolio3d/internal/viewer"
)

var (
	assetPath   string
	configPath  string
	contentPath string
	logLevel    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Interactive 3D portfolio viewer",
		Long: `portfolio - Interactive 3D portfolio viewer

Loads a glTF scene and lets you orbit around it. Clicking a house, office,
drone or project object opens a popup about it.

Controls:
  Left drag   - Orbit
  Right drag  - Pan
  Scroll      - Zoom
  Click       - Open popup for the object under the pointer
  Esc         - Close popup
  F1          - Toggle debug overlay`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := resolveUserPaths(cmd); err != nil {
				return err
			}
			chdirToExecutable()
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return viewer.New(cfg).Run(ctx)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&assetPath, "asset", "", "Path to the glTF/GLB scene (default from config)")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the TOML config file")
	cmd.Flags().StringVar(&contentPath, "content", "", "Path to the TOML popup content (default from config)")

	cmd.AddCommand(newInspectCmd(), newConfigCmd())
	return cmd
}

// resolveUserPaths makes the path flags the user set absolute, so they keep
// pointing at the caller's working directory after chdirToExecutable.
func resolveUserPaths(cmd *cobra.Command) error {
	paths := []struct {
		flag string
		path *string
	}{
		{"asset", &assetPath},
		{"config", &configPath},
		{"content", &contentPath},
	}
	for _, p := range paths {
		if !cmd.Flags().Changed(p.flag) {
			continue
		}
		abs, err := filepath.Abs(*p.path)
		if err != nil {
			return fmt.Errorf("resolve --%s: %w", p.flag, err)
		}
		*p.path = abs
	}
	return nil
}

// chdirToExecutable moves to the executable's directory so the default config,
// asset and shader paths resolve for deployed builds.
// Skip this for "go run" which puts the binary in a temp directory.
func chdirToExecutable() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return
	}
	if err := os.Chdir(execDir); err != nil {
		slog.Warn("could not change to executable directory", "dir", execDir, "error", err)
	}
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("asset") {
		cfg.Asset.Path = assetPath
	}
	if cmd.Flags().Changed("content") {
		cfg.Content.Path = contentPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	slog.Debug("config loaded", "path", configPath, "asset", cfg.Asset.Path, "content", cfg.Content.Path)
	return cfg, nil
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Write the default config to a file (default ./viewer.toml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
