package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/enumcheck/internal/analyzer"
	"github.com/olehluchkiv/enumcheck/internal/config"
	"github.com/olehluchkiv/enumcheck/internal/loader"
	"github.com/olehluchkiv/enumcheck/internal/logging"
	"github.com/olehluchkiv/enumcheck/internal/pipeline"
	"github.com/olehluchkiv/enumcheck/internal/report"
	"github.com/olehluchkiv/enumcheck/internal/resolver"
	"github.com/olehluchkiv/enumcheck/internal/watcher"
)

const (
	exitOK         = 0
	exitError      = 1
	exitDuplicates = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Go's default flag.Parse stops at the first non-flag argument, which
	// breaks "enumcheck ./path -format table". We reorder args so flags
	// come first, then positional args.
	flags, positional := reorderArgs(args)

	defaults := config.Default()
	fs := flag.NewFlagSet("enumcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pathFlag := fs.String("path", "", "path or GitHub URL to analyze (alternative to positional argument)")
	schemaFlag := fs.String("schema", "", "read enum definitions from a TOML schema file instead of Go packages")
	configFlag := fs.String("config", "", "config file (default: $"+config.EnvVar+" or "+config.FileName+" in the analyzed directory)")
	filter := fs.String("filter", defaults.Filter, "package path prefix filter")
	includeUnexported := fs.Bool("include-unexported", defaults.IncludeUnexported, "include unexported enum types")
	includeTests := fs.Bool("include-tests", defaults.IncludeTests, "also load _test.go files")
	ignore := fs.String("ignore", "", "comma-separated enum names to skip (Name or pkgpath.Name)")
	format := fs.String("format", defaults.Format, "output format (console, log, table)")
	showSequence := fs.Bool("show-sequence", defaults.ShowSequence, "print inconsistent value sequences")
	ascending := fs.Bool("ascending", false, "expect enum values to increase by one (default rule expects a decrease)")
	parallel := fs.Int("parallel", defaults.Parallel, "number of enums analyzed concurrently")
	noColor := fs.Bool("no-color", false, "disable colored console output")
	strict := fs.Bool("strict", defaults.Strict, "exit with status 2 when duplicate values are found")
	watch := fs.Bool("watch", false, "re-run the analysis whenever a Go file changes")
	logFile := fs.String("log-file", defaults.LogFile, "log file path (stderr only when empty)")
	logLevel := fs.String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}
	// Collect any remaining args from flag parsing + our positional args
	positional = append(positional, fs.Args()...)

	// Determine input: positional argument takes precedence, then -path flag
	input := ""
	if len(positional) > 0 {
		input = positional[0]
	}
	if input == "" {
		input = *pathFlag
	}
	if input == "" && *schemaFlag == "" {
		fmt.Fprintln(stderr, "Usage: enumcheck [flags] <path-or-url>")
		fs.PrintDefaults()
		return exitError
	}

	cfg, err := loadConfig(*configFlag, configDir(input))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	// Explicitly set flags win over the config file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "filter":
			cfg.Filter = *filter
		case "include-unexported":
			cfg.IncludeUnexported = *includeUnexported
		case "include-tests":
			cfg.IncludeTests = *includeTests
		case "ignore":
			cfg.Ignore = splitList(*ignore)
		case "format":
			cfg.Format = *format
		case "show-sequence":
			cfg.ShowSequence = *showSequence
		case "ascending":
			if *ascending {
				cfg.Sequence = analyzer.StepAscending.String()
			} else {
				cfg.Sequence = analyzer.StepDescending.String()
			}
		case "parallel":
			cfg.Parallel = *parallel
		case "strict":
			cfg.Strict = *strict
		case "log-file":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid log level %q: %v\n", cfg.LogLevel, err)
		return exitError
	}

	logger, logCleanup, err := logging.Setup(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to setup logging: %v\n", err)
		return exitError
	}
	defer logCleanup()

	// Setup signal handling with context cancellation
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pcfg := pipeline.Config{
		Schema: *schemaFlag,
		Loader: loader.Options{
			Filter:            cfg.Filter,
			IncludeUnexported: cfg.IncludeUnexported,
			IncludeTests:      cfg.IncludeTests,
			Ignore:            cfg.Ignore,
		},
		StepRule: cfg.StepRule(),
		Parallel: cfg.Parallel,
	}

	if pcfg.Schema == "" {
		fmt.Fprintln(stdout, "Resolving input...")
		dir, resolverCleanup, err := resolver.New(logger).Resolve(ctx, input)
		if err != nil {
			logger.Error("failed to resolve input", "error", err)
			fmt.Fprintf(stderr, "Error resolving input: %v\n", err)
			return exitError
		}
		defer resolverCleanup()
		pcfg.Dir = dir
	}

	pass := func() (pipeline.Summary, error) {
		r, finish := newReporter(cfg, *noColor, stdout, logger)
		s, err := pipeline.Run(ctx, pcfg, r, logger)
		if err != nil {
			return s, err
		}
		finish()
		if s.Isolated != nil {
			fmt.Fprintf(stderr, "Some enums could not be fully analyzed:\n%v\n", s.Isolated)
		}
		fmt.Fprintf(stdout, "Checked %d enums: %d duplicate groups, %d sequence findings\n",
			s.Enums, s.DuplicateGroups, s.SequenceFindings)
		fmt.Fprintln(stdout, "Done!")
		return s, nil
	}

	summary, err := pass()
	if err != nil {
		logger.Error("analysis failed", "error", err)
		fmt.Fprintf(stderr, "Error analyzing enums: %v\n", err)
		return exitError
	}

	if *watch {
		root := pcfg.Dir
		if root == "" {
			root = "."
		}
		w, err := watcher.New(root, watcher.DefaultDebounce, func() {
			if _, err := pass(); err != nil {
				logger.Error("analysis failed", "error", err)
				fmt.Fprintf(stderr, "Error analyzing enums: %v\n", err)
			}
		}, logger)
		if err != nil {
			fmt.Fprintf(stderr, "Error starting watcher: %v\n", err)
			return exitError
		}
		fmt.Fprintf(stdout, "Watching %s for changes (Ctrl+C to stop)\n", root)
		if err := w.Run(ctx); err != nil {
			fmt.Fprintf(stderr, "Watcher error: %v\n", err)
			return exitError
		}
		return exitOK
	}

	if cfg.Strict && summary.DuplicateGroups > 0 {
		return exitDuplicates
	}
	return exitOK
}

// newReporter builds the reporter for cfg.Format. finish must be called
// after the pass to flush buffered output.
func newReporter(cfg config.Config, noColor bool, stdout io.Writer, logger *slog.Logger) (analyzer.Reporter, func()) {
	switch cfg.Format {
	case "log":
		return report.NewLog(logger), func() {}
	case "table":
		t := &report.Table{ShowSequence: cfg.ShowSequence}
		return t, func() { t.Render(stdout) }
	default:
		c := report.NewConsole(stdout, report.ConsoleOptions{ShowSequence: cfg.ShowSequence, NoColor: noColor})
		return c, func() {}
	}
}

func loadConfig(explicit, dir string) (config.Config, error) {
	path, err := config.Find(explicit, dir)
	if err != nil {
		return config.Config{}, err
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// configDir is where the implicit config file is looked up: the input
// directory for local paths, the working directory otherwise.
func configDir(input string) string {
	if input == "" || strings.Contains(input, "://") {
		return "."
	}
	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return input
	}
	return "."
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional path argument).
// Flags that take a value (e.g., -format table) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	// Set of flags that take a value argument
	valueFlagSet := map[string]bool{
		"-path": true, "-schema": true, "-config": true, "-filter": true,
		"-ignore": true, "-format": true, "-parallel": true,
		"-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value (and it's not using = syntax)
			if !strings.Contains(arg, "=") && valueFlagSet[arg] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
}
