package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tmorel/studyextract/internal/common"
	"github.com/tmorel/studyextract/internal/llm/gemini"
	"github.com/tmorel/studyextract/internal/pipeline"
	"github.com/tmorel/studyextract/internal/store"
	"github.com/tmorel/studyextract/internal/template"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		templatePath = flag.String("template", "", "extraction template, .docx or .xlsx (required)")
		articlesDir  = flag.String("articles", "Articles", "directory of source PDF articles")
		out          = flag.String("out", "extracted_studies.xlsx", "output XLSX table path")
		limit        = flag.Int("limit", 0, "max articles to process this run (0 = all)")
		verbose      = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if *templatePath == "" {
		printError("Error: --template is required\n")
		flag.Usage()
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	// Pre-flight: an unreadable, unsupported or empty template can never
	// proceed; nothing useful happens with an empty schema.
	fields, err := template.Parse(*templatePath)
	if err != nil {
		switch {
		case errors.Is(err, template.ErrTemplateNotFound),
			errors.Is(err, template.ErrUnsupportedFormat),
			errors.Is(err, template.ErrEmptyTemplate):
			printError("Error: %v\n", err)
		default:
			printError("Error: parsing template: %v\n", err)
		}
		os.Exit(1)
	}
	logger.Info("template loaded", "path", *templatePath, "fields", len(fields))

	client := gemini.NewClient(gemini.Config{
		APIKey:       cfg.Gemini.APIKey,
		BaseURL:      cfg.Gemini.BaseURL,
		Model:        cfg.Gemini.Model,
		Timeout:      cfg.Gemini.Timeout,
		PollInterval: cfg.Gemini.PollInterval,
	}, logger)

	table := store.NewTable(*out, template.Names(fields), logger)

	runner, err := pipeline.NewRunner(logger, cfg.Extract, client, fields, table)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	sum, err := runner.Run(ctx, *articlesDir, *limit)
	if err != nil {
		logger.Error("run aborted", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	// Per-document failures are not a run failure: the table holds
	// everything that succeeded and a rerun picks up the rest.
	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Articles found: %d\n", sum.Found)
	fmt.Printf("- Already processed: %d\n", sum.Skipped)
	fmt.Printf("- Processed: %d\n", sum.Processed)
	fmt.Printf("- Failed: %d\n", sum.Failed)
	fmt.Printf("- Output: %s\n", *out)
}
