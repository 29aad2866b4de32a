package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"subtran/internal/engine"
	"subtran/internal/language"
	"subtran/internal/memory"
	"subtran/internal/model"
	"subtran/internal/pipeline"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var targetFlag string
	var dryRun bool
	var noWrap bool

	cmd := &cobra.Command{
		Use:   "translate <input.srt> [output.srt]",
		Short: "Re-translate a subtitle file sentence by sentence",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if value := strings.TrimSpace(sourceFlag); value != "" {
				cfg.Languages.Source = strings.ToLower(value)
			}
			if value := strings.TrimSpace(targetFlag); value != "" {
				cfg.Languages.Target = strings.ToLower(value)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if noWrap {
				cfg.Format.Wrap = false
			}

			inputPath := args[0]
			outputPath := defaultOutputPath(inputPath, cfg.Languages.Target)
			if len(args) == 2 {
				outputPath = args[1]
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := ctx.logger()

			if cfg.Model.AutoInstall {
				mgr := model.NewManager(
					cfg.Paths.ModelDir,
					cfg.Model.DownloadURL,
					cfg.Model.MinFreeGiB,
					time.Duration(cfg.Model.TimeoutSeconds)*time.Second,
					model.WithLogger(logger),
				)
				if err := mgr.Ensure(runCtx); err != nil {
					return fmt.Errorf("provision model: %w", err)
				}
			}

			var store *memory.Store
			if cfg.Memory.Enabled {
				store, err = memory.Open(cfg.Memory.Path)
				if err != nil {
					return fmt.Errorf("open translation memory: %w", err)
				}
				defer store.Close()
			}

			client := engine.NewClient(engine.Config{
				BaseURL:        cfg.Engine.BaseURL,
				APIKey:         cfg.Engine.APIKey,
				Source:         cfg.Languages.Source,
				Target:         cfg.Languages.Target,
				TimeoutSeconds: cfg.Engine.TimeoutSeconds,
				MaxRetries:     cfg.Engine.MaxRetries,
			})
			if err := client.HealthCheck(runCtx); err != nil {
				return fmt.Errorf("engine preflight: %w", err)
			}

			p, err := pipeline.New(pipeline.Options{
				Config:     cfg,
				Translator: client,
				Memory:     store,
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			summary, err := p.Run(runCtx, inputPath, outputPath, dryRun)
			if err != nil {
				return err
			}

			memoryEntries := -1
			if store != nil {
				if n, err := store.Count(runCtx, cfg.Languages.Source, cfg.Languages.Target); err == nil {
					memoryEntries = n
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summary, cfg.Languages.Source, cfg.Languages.Target, memoryEntries))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceFlag, "source", "", "Source language code (overrides config)")
	cmd.Flags().StringVar(&targetFlag, "target", "", "Target language code (overrides config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the full pipeline without writing the output file")
	cmd.Flags().BoolVar(&noWrap, "no-wrap", false, "Skip line wrapping of translated blocks")
	return cmd
}

func defaultOutputPath(inputPath, target string) string {
	if idx := strings.LastIndex(inputPath, ".srt"); idx == len(inputPath)-4 {
		return inputPath[:idx] + "." + target + ".srt"
	}
	return inputPath + "." + target + ".srt"
}

func renderSummary(summary *pipeline.Summary, source, target string, memoryEntries int) string {
	rows := [][]string{
		{"Languages", fmt.Sprintf("%s -> %s", language.DisplayName(source), language.DisplayName(target))},
		{"Blocks", strconv.Itoa(summary.Blocks)},
		{"Source sentences", strconv.Itoa(summary.SourceSentences)},
		{"Translated sentences", strconv.Itoa(summary.TranslatedSentences)},
		{"Sentence drift", strconv.Itoa(summary.Drift())},
		{"Translator calls", strconv.Itoa(summary.TranslatorCalls)},
		{"Count mismatches", strconv.Itoa(summary.Mismatches)},
		{"Reassembly shortfall", strconv.Itoa(summary.Shortfall)},
		{"Memory hits", strconv.Itoa(summary.MemoryHits)},
	}
	if memoryEntries >= 0 {
		rows = append(rows, []string{"Memory entries", strconv.Itoa(memoryEntries)})
	}
	rows = append(rows,
		[]string{"Duration", summary.Duration.Round(time.Millisecond).String()},
		[]string{"Dry run", yesNo(summary.DryRun)},
	)
	return renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
}
