package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gochijan/gochijan/game"
	"github.com/gochijan/gochijan/game/config"
)

var (
	previewSeed       string // Round seed to replay
	previewConfigFile string // Optional YAML config instead of the saved one
	previewStrategy   string // Optional strategy override
)

// previewCmd replays the draw for one seed. Same seed and configuration
// always print the same three foods.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Replay the food draw for a round seed",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg game.Config
		if previewConfigFile != "" {
			loaded, err := config.LoadFile(previewConfigFile)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			store, closeDB, err := openConfigStore(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer closeDB()
			cfg, _ = store.Config()
		}
		if cmd.Flags().Changed("strategy") {
			s, err := game.ParsePreviewStrategy(previewStrategy)
			if err != nil {
				return err
			}
			cfg.Strategy = s
		}

		printPreview(cmd.OutOrStdout(), game.GeneratePreview(previewSeed, cfg))
		return nil
	},
}

// printPreview writes one line per hand.
func printPreview(w io.Writer, pv game.RoundPreview) {
	fmt.Fprintf(w, "seed %s (%s)\n", pv.Seed, pv.Strategy)
	for _, h := range game.Hands {
		item := pv.Item(h)
		if item.Food == nil {
			fmt.Fprintf(w, "  %-9s -\n", h)
			continue
		}
		fmt.Fprintf(w, "  %-9s %s +%dpt [%s]\n", h, item.Food.Name, item.Points, item.Food.ID)
	}
}

func init() {
	previewCmd.Flags().StringVar(&previewSeed, "seed", "", "Round seed")
	previewCmd.Flags().StringVar(&previewConfigFile, "config", "", "YAML configuration file (default: saved configuration)")
	previewCmd.Flags().StringVar(&previewStrategy, "strategy", "", "Preview strategy override (shared, partitioned)")
	_ = previewCmd.MarkFlagRequired("seed")

	rootCmd.AddCommand(previewCmd)
}
