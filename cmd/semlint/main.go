// Package main provides the semlint binary entry point.
// semlint checks Stencil component sources written in TypeScript.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/c360studio/semlint/config"
	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"

	// Register the TypeScript front end via init()
	_ "github.com/c360studio/semlint/processor/ast/ts"

	// Register the Stencil rules via init()
	"github.com/c360studio/semlint/rules"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semlint"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		if !errors.Is(err, ErrProblems) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// flags are the root command options.
type flags struct {
	configPath  string
	format      string
	rules       []string
	watch       bool
	logLevel    string
	noColor     bool
	maxWarnings int
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "semlint [paths...]",
		Short: "Lint Stencil components",
		Long: `semlint checks TypeScript sources of Stencil web components.

Paths may be files, directories or doublestar globs. With no paths the
current directory is linted. Configuration is read from semlint.yaml,
semlint.yml or semlint.toml in the working directory or a parent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f, args)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML or TOML)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format (text, json, sarif)")
	cmd.Flags().StringArrayVar(&f.rules, "rule", nil, "Rule override as name=severity or name=[severity, options...] (repeatable)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-lint files as they change")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable coloured output")
	cmd.Flags().IntVar(&f.maxWarnings, "max-warnings", -1, "Fail when there are more warnings than this (-1 disables)")

	cmd.AddCommand(rulesCmd(), initCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			fmt.Fprintf(cmd.OutOrStdout(), "languages: %s\n", strings.Join(ast.DefaultRegistry.Languages(), ", "))
		},
	}
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRules(cmd.OutOrStdout(), rules.All())
		},
	}
}

func initCmd() *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a semlint.yaml extending a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := config.NewLoader(newLogger(cmd.ErrOrStderr(), "warn")).Init(dir, preset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (extends %s)\n", path, preset)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", config.PresetRecommended,
		"Preset to extend ("+strings.Join(config.PresetNames(), ", ")+")")
	return cmd
}

// newLogger maps --log-level onto a text handler.
func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, stdout, stderr io.Writer, f flags, args []string) error {
	logger := newLogger(stderr, f.logLevel)
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load(config.LoadOptions{
		ConfigPath: f.configPath,
		Overrides:  f.rules,
		Registry:   lint.DefaultRegistry,
	})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.format != "" {
		cfg.Format = f.format
	}

	app, err := NewApp(cfg, AppOptions{
		Out:         stdout,
		Color:       !f.noColor && !color.NoColor,
		MaxWarnings: f.maxWarnings,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	summary, err := app.Run(ctx, args)
	if err != nil {
		return err
	}
	if f.watch {
		return app.Watch(ctx, watchRoot(args))
	}
	return app.Check(summary)
}
