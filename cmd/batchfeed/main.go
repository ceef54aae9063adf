package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"batchfeed/internal/config"
	"batchfeed/internal/dataset"
	"batchfeed/internal/trainer"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := &cobra.Command{
		Use:           "batchfeed",
		Short:         "Feed array datasets to a training loop in batches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(trainCmd(), genCmd())

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func trainCmd() *cobra.Command {
	var cfgPath string
	var o config.Overrides

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the demo model on a stored dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg.ApplyOverrides(o)
			if err := cfg.Validate(); err != nil {
				return err
			}

			data, err := dataset.Load(cfg.DataDir)
			if err != nil {
				return err
			}
			for _, name := range data.Names() {
				log.Info().Str("name", name).Ints("shape", data[name].Shape()).Msg("loaded array")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return trainer.Run(ctx, trainer.RunConfig{
				Data:      data,
				BatchSize: cfg.BatchSize,
				Epochs:    cfg.Epochs,
				Shuffle:   cfg.Shuffle,
				Seed:      cfg.Seed,
				NoiseStd:  cfg.NoiseStd,
				NoiseMean: cfg.NoiseMean,
				LearnRate: cfg.LearnRate,
				LogEvery:  cfg.LogEvery,
				Verbose:   cfg.Verbose,
			})
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "configs/demo.yaml", "Path to YAML config")
	cmd.Flags().StringVar(&o.DataDir, "data-dir", "", "Override dataset directory")
	cmd.Flags().IntVar(&o.BatchSize, "batch-size", 0, "Override batch size")
	cmd.Flags().IntVar(&o.Epochs, "epochs", 0, "Override epoch count")
	cmd.Flags().Int64Var(&o.Seed, "seed", 0, "Override PRNG seed")
	cmd.Flags().IntVar(&o.LogEvery, "log-every", 0, "Override logging cadence")
	return cmd
}

func genCmd() *cobra.Command {
	var out string
	var sequences, timeSteps, features int
	var seed int64

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a synthetic regression dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := syntheticDataset(sequences, timeSteps, features, seed)
			if err := dataset.Save(out, data); err != nil {
				return err
			}
			log.Info().Str("dir", out).Int("sequences", sequences).
				Int("time_steps", timeSteps).Int("features", features).
				Msg("dataset written")
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "data/demo", "Output dataset directory")
	cmd.Flags().IntVar(&sequences, "sequences", 64, "Number of sequences (batch dimension)")
	cmd.Flags().IntVar(&timeSteps, "time-steps", 5, "Time dimension size")
	cmd.Flags().IntVar(&features, "features", 8, "Feature dimension size")
	cmd.Flags().Int64Var(&seed, "seed", 42, "PRNG seed")
	return cmd
}
