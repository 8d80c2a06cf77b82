package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/c360studio/semlint/config"
	"github.com/c360studio/semlint/lint"
	"github.com/c360studio/semlint/processor/ast"
	"github.com/c360studio/semlint/processor/discover"
	"github.com/c360studio/semlint/typeinfo"
)

// ErrProblems is returned when the run found errors or too many warnings.
// The report has already been written, so main exits quietly.
var ErrProblems = errors.New("lint problems found")

// parserFailure is the rule name recorded for files the front end rejects.
const parserFailure = "parser"

// AppOptions configure an App.
type AppOptions struct {
	Out         io.Writer
	Color       bool
	MaxWarnings int
	// Jobs bounds parallel parsing. Defaults to GOMAXPROCS.
	Jobs int
	// Registry defaults to lint.DefaultRegistry.
	Registry *lint.Registry
	// Parsers defaults to ast.DefaultRegistry.
	Parsers *ast.ParserRegistry
	Logger  *slog.Logger
}

// App wires configuration, file discovery, parsing, linting and reporting.
type App struct {
	cfg      *config.Config
	opts     AppOptions
	linter   *lint.Linter
	matcher  *discover.Matcher
	reporter *lint.Reporter
	logger   *slog.Logger

	// hashes of the last linted content, seeded into the watcher
	hashes map[string]string
}

// NewApp compiles the enabled rules. Rule option errors surface here.
func NewApp(cfg *config.Config, opts AppOptions) (*App, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Registry == nil {
		opts.Registry = lint.DefaultRegistry
	}
	if opts.Parsers == nil {
		opts.Parsers = ast.DefaultRegistry
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	format, err := lint.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	settings := cfg.LintSettings(true)
	settings.Logger = opts.Logger
	linter, err := lint.New(opts.Registry, settings)
	if err != nil {
		return nil, fmt.Errorf("configure rules: %w", err)
	}
	if len(linter.Rules()) == 0 {
		opts.Logger.Warn("No rules enabled",
			slog.String("hint", "add extends: "+config.PresetRecommended+" or run semlint init"))
	}
	matcher, err := discover.NewMatcher(cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("Front ends",
		slog.Any("languages", opts.Parsers.Languages()),
		slog.Any("extensions", opts.Parsers.Extensions()))

	return &App{
		cfg:     cfg,
		opts:    opts,
		linter:  linter,
		matcher: matcher,
		reporter: lint.NewReporter(opts.Out, format,
			lint.WithColor(opts.Color),
			lint.WithRules(opts.Registry.Rules()),
			lint.WithVersion(Version)),
		logger: opts.Logger,
		hashes: make(map[string]string),
	}, nil
}

// Run lints every file args resolve to and writes the report.
func (a *App) Run(ctx context.Context, args []string) (lint.Summary, error) {
	files, err := discover.Resolve(ctx, args, a.matcher)
	if err != nil {
		return lint.Summary{}, err
	}
	a.logger.Info("Linting",
		slog.Int("files", len(files)),
		slog.Int("rules", len(a.linter.Rules())),
		slog.String("run_id", a.reporter.RunID()))

	results, err := a.Lint(ctx, files)
	if err != nil {
		return lint.Summary{}, err
	}
	if err := a.reporter.Report(results); err != nil {
		return lint.Summary{}, err
	}
	return lint.Summarize(results), nil
}

// Lint parses files in parallel, then lints them one at a time in input
// order. A file the front end rejects yields a result with one failure.
func (a *App) Lint(ctx context.Context, files []string) ([]*lint.Result, error) {
	parsed := make([]*ast.ParseResult, len(files))
	parseErrs := make([]error, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Jobs)
	for i, path := range files {
		g.Go(func() error {
			res, err := ast.ParseFileWith(gctx, a.opts.Parsers, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				parseErrs[i] = err
				return nil
			}
			parsed[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*lint.Result, 0, len(files))
	for i, path := range files {
		if parseErrs[i] != nil {
			a.logger.Warn("Parse failed", slog.String("path", path), slog.String("error", parseErrs[i].Error()))
			results = append(results, &lint.Result{
				Path:     path,
				Failures: []lint.CheckFailure{{Rule: parserFailure, Path: path, Node: "Program", Err: parseErrs[i]}},
			})
			continue
		}
		res, err := a.lintParsed(ctx, parsed[i])
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (a *App) lintParsed(ctx context.Context, p *ast.ParseResult) (*lint.Result, error) {
	a.hashes[p.Path] = p.Hash
	return a.linter.LintFile(ctx, &lint.File{
		Path:    p.Path,
		Source:  p.Source,
		Program: p.Program,
		Types:   typeinfo.NewDeclared(p.Program),
	})
}

// Check turns a summary into the exit status: errors, parse failures or
// more warnings than allowed fail the run.
func (a *App) Check(s lint.Summary) error {
	switch {
	case s.Errors > 0, s.Failures > 0:
		return ErrProblems
	case a.opts.MaxWarnings >= 0 && s.Warnings > a.opts.MaxWarnings:
		fmt.Fprintf(a.opts.Out, "Too many warnings (%d). Maximum allowed is %d.\n", s.Warnings, a.opts.MaxWarnings)
		return ErrProblems
	}
	return nil
}

// Watch re-lints changed files under root until ctx is cancelled.
func (a *App) Watch(ctx context.Context, root string) error {
	w, err := ast.NewWatcher(ast.WatcherConfig{
		Root:    root,
		Filter:  a.matcher,
		Parsers: a.opts.Parsers,
		Logger:  a.logger,
	})
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	for path, hash := range a.hashes {
		w.SetHash(path, hash)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	for ev := range w.Events() {
		switch {
		case ev.Error != nil:
			a.logger.Warn("Parse failed", slog.String("path", ev.Path), slog.String("error", ev.Error.Error()))
		case ev.Operation == ast.OpDelete:
			a.logger.Info("File removed", slog.String("path", ev.Path))
		case ev.Result != nil:
			res, err := a.lintParsed(ctx, ev.Result)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			if err := a.reporter.Report([]*lint.Result{res}); err != nil {
				return err
			}
		}
	}
	return nil
}

// watchRoot is the directory to watch: the first directory argument, else
// the working directory.
func watchRoot(args []string) string {
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && info.IsDir() {
			return arg
		}
	}
	return "."
}

// printRules writes the rule table for `semlint rules`.
func printRules(w io.Writer, all []*lint.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tCATEGORY\tTYPES\tFIXABLE\tRECOMMENDED")
	for _, r := range all {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.Category, mark(r.NeedsTypes), mark(r.Fixable), mark(config.InPreset(config.PresetRecommended, r.Name)))
	}
	return tw.Flush()
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "-"
}
