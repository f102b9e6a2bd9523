package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/docsum/internal/app"
)

type options struct {
	query      string
	outputPath string
	configPath string
	envFiles   []string
	verbose    bool
}

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, app.Deps{})
	stop()
	os.Exit(code)
}

// execute runs the root command and maps the outcome to a process exit code.
func execute(ctx context.Context, args []string, stdout io.Writer, deps app.Deps) int {
	cmd := newRootCmd(stdout, deps)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return exitCode(err)
}

// exitCode is 0 on success and when no input had readable text, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, app.ErrNoReadableText):
		return 0
	default:
		log.Error().Err(err).Msg("run failed")
		return 1
	}
}

func newRootCmd(stdout io.Writer, deps app.Deps) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "docsum [flags] <files or URLs>...",
		Short:         "Summarize PDFs, DOCX, CSV, text files and web pages with a local LLM",
		Args:          cobra.MinimumNArgs(1),
		Version:       app.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(opts, args)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			deps.Stdout = stdout
			a, err := app.New(cfg, deps)
			if err != nil {
				return fmt.Errorf("init app: %w", err)
			}
			return a.Run(cmd.Context())
		},
	}
	cmd.SetOut(stdout)

	f := cmd.Flags()
	f.StringVarP(&opts.query, "query", "q", app.DefaultQuery, "Prompt sent with the extracted text")
	f.StringVarP(&opts.outputPath, "file", "f", "", "Write the response to this path instead of stdout (.pdf renders a PDF)")
	f.StringVarP(&opts.configPath, "config", "c", "", "Optional YAML or JSON config file")
	f.StringArrayVar(&opts.envFiles, "env-file", []string{".env"}, "Dotenv file to load (repeatable)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")
	return cmd
}

// buildConfig layers defaults, the config file, the environment and flags,
// in increasing order of precedence.
func buildConfig(opts options, args []string) (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnvFiles(opts.envFiles...); err != nil {
		return cfg, err
	}
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)

	cfg.Sources = args
	cfg.Query = opts.query
	cfg.OutputPath = opts.outputPath
	if opts.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
