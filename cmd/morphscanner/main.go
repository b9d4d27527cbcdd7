// Command morphscanner segments transcription tokens, scores candidate roots
// against corpus evidence and promotes approved roots into the reference
// vocabulary.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"MorphScanner/internal/app"
	"MorphScanner/internal/config"
	"MorphScanner/internal/logging"
)

// CLI defines the command-line interface.
var CLI struct {
	Config string `name:"config" short:"c" help:"YAML config path (overrides MORPHSCANNER_CONFIG)" type:"path"`

	Segment    SegmentCmd    `cmd:"" help:"Decompose tokens into prefix, root, suffixes and residue"`
	Discover   DiscoverCmd   `cmd:"" help:"List candidate roots found in the corpus"`
	Evaluate   EvaluateCmd   `cmd:"" help:"Run a validation round over candidate roots"`
	Promote    PromoteCmd    `cmd:"" help:"Merge approved roots from a round into the vocabulary"`
	Vocabulary VocabularyCmd `cmd:"" help:"Print the current reference vocabulary"`
	Table      TableCmd      `cmd:"" help:"Print the morpheme table in use as YAML"`
}

// runtime is bound into every command's Run method.
type runtime struct {
	ctx context.Context
	app *app.Application
	out io.Writer
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("morphscanner"),
		kong.Description("Morphological segmentation and evidence-based validation of Voynich roots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(CLI.Config)
	kctx.FatalIfErrorf(err)

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	application, err := app.New(ctx, *cfg, logger)
	kctx.FatalIfErrorf(err)

	err = kctx.Run(&runtime{ctx: ctx, app: application, out: os.Stdout})
	if closeErr := application.Close(); closeErr != nil {
		logger.Error("close storage", "error", closeErr)
	}
	if err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
