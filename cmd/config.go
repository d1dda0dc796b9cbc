package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gochijan/gochijan/game"
	"github.com/gochijan/gochijan/game/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit the saved configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openConfigStore(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer closeDB()
		cfg, _ := store.Config()
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Replace the configuration with a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(args[0])
		if err != nil {
			return err
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.Replace(cfg)
			return nil
		})
	},
}

var configExportCmd = &cobra.Command{
	Use:   "export <file.yaml>",
	Short: "Write the configuration as a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openConfigStore(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer closeDB()
		cfg, _ := store.Config()
		return config.SaveFile(args[0], cfg)
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset-defaults",
	Short: "Restore the preset configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.Replace(config.DefaultConfig())
			return nil
		})
	},
}

var configSetTargetCmd = &cobra.Command{
	Use:   "set-target <points>",
	Short: "Set the points needed to win (non-numbers mean 50)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.SetPointTarget(config.ParsePointTarget(args[0]))
			return nil
		})
	},
}

var configSetFixedCmd = &cobra.Command{
	Use:   "set-fixed <points>",
	Short: "Set the default points per food in fixed mode (non-numbers mean 3)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.SetFixedPoint(config.ParseFixedPoint(args[0]))
			return nil
		})
	},
}

var configSetScoringCmd = &cobra.Command{
	Use:   "set-scoring <fixed|name-length>",
	Short: "Choose how foods are scored",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := game.ParseScoring(args[0])
		if err != nil {
			return err
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.SetScoring(mode)
			return nil
		})
	},
}

var configSetStrategyCmd = &cobra.Command{
	Use:   "set-strategy <shared|partitioned>",
	Short: "Choose how foods are assigned to hands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, err := game.ParsePreviewStrategy(args[0])
		if err != nil {
			return err
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.SetStrategy(strategy)
			return nil
		})
	},
}

var configSetPlayerCmd = &cobra.Command{
	Use:   "set-player <p1|p2> <name>",
	Short: "Rename a player",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		who, err := game.ParsePlayer(args[0])
		if err != nil {
			return err
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			s.SetPlayerName(who, args[1])
			return nil
		})
	},
}

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Edit the food pool",
}

var foodAddPoints int

var foodAddCmd = &cobra.Command{
	Use:   "add <pool> [name]",
	Short: "Add a food to a hand's pool",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := game.ParseHand(args[0])
		if err != nil {
			return err
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			f, _ := s.AddFood(pool)
			patch := config.FoodPatch{}
			if len(args) == 2 {
				patch.Name = &args[1]
			}
			if cmd.Flags().Changed("points") {
				pts := config.NormalizeFixedPoint(foodAddPoints)
				patch.Points = &pts
			}
			s.UpdateFood(f.ID, patch)
			fmt.Fprintln(cmd.OutOrStdout(), f.ID)
			return nil
		})
	},
}

var foodToggleCmd = &cobra.Command{
	Use:   "toggle <id> <on|off>",
	Short: "Enable or disable a food",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch args[1] {
		case "on", "true", "1":
			on = true
		case "off", "false", "0":
		default:
			return fmt.Errorf("expected on or off, got %q", args[1])
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			if !hasFood(s, args[0]) {
				return fmt.Errorf("no food %q", args[0])
			}
			s.ToggleFood(args[0], on)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConfig(cmd.Context(), func(s *config.Store) error {
			if !hasFood(s, args[0]) {
				return fmt.Errorf("no food %q", args[0])
			}
			s.DeleteFood(args[0])
			return nil
		})
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the three saved templates",
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <slot>",
	Short: "Save the configuration into a template slot (0-2)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("slot must be a number: %w", err)
		}
		store, closeDB, err := openConfigStore(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer closeDB()
		return store.SaveTemplate(cmd.Context(), slot)
	},
}

var templateLoadCmd = &cobra.Command{
	Use:   "load <slot>",
	Short: "Make a template the current configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slot, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("slot must be a number: %w", err)
		}
		return withConfig(cmd.Context(), func(s *config.Store) error {
			return s.LoadTemplate(slot)
		})
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the template slots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openConfigStore(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer closeDB()
		out := cmd.OutOrStdout()
		for i, t := range store.Templates() {
			if t == nil {
				fmt.Fprintf(out, "%d: (empty)\n", i)
				continue
			}
			fmt.Fprintf(out, "%d: %s vs %s, first to %d, %d foods\n",
				i, t.Players.P1Name, t.Players.P2Name, t.Rule.PointTarget, len(t.Foods))
		}
		return nil
	},
}

func hasFood(s *config.Store, id string) bool {
	cfg, _ := s.Config()
	for _, f := range cfg.Foods {
		if f.ID == id {
			return true
		}
	}
	return false
}

func printConfig(w io.Writer, cfg game.Config) {
	strategy := cfg.Strategy
	if strategy == "" {
		strategy = game.SharedPool
	}
	fmt.Fprintf(w, "players:  %s vs %s\n", cfg.Players.P1Name, cfg.Players.P2Name)
	fmt.Fprintf(w, "target:   %d\n", cfg.Rule.PointTarget)
	scoring := string(cfg.Rule.Scoring)
	if cfg.Rule.Scoring != game.ScoringNameLength {
		scoring = fmt.Sprintf("%s (%d)", game.ScoringFixed, game.CalcPoints(cfg.Rule, "", nil))
	}
	fmt.Fprintf(w, "scoring:  %s\n", scoring)
	fmt.Fprintf(w, "strategy: %s\n", strategy)
	fmt.Fprintln(w, "foods:")
	for _, f := range cfg.Foods {
		state := "on "
		if !f.Enabled {
			state = "off"
		}
		pool := string(f.Pool)
		if pool == "" {
			pool = "-"
		}
		fmt.Fprintf(w, "  [%s] %-12s %-9s %s %dpt\n", state, f.ID, pool, f.Name, game.CalcPoints(cfg.Rule, f.Name, f.Points))
	}
}

func init() {
	foodAddCmd.Flags().IntVar(&foodAddPoints, "points", game.DefaultFixedPoints, "Fixed points for the new food")
	foodCmd.AddCommand(foodAddCmd, foodToggleCmd, foodDeleteCmd)
	templateCmd.AddCommand(templateSaveCmd, templateLoadCmd, templateListCmd)
	configCmd.AddCommand(configShowCmd, configImportCmd, configExportCmd, configResetCmd,
		configSetTargetCmd, configSetFixedCmd, configSetScoringCmd, configSetStrategyCmd,
		configSetPlayerCmd, foodCmd, templateCmd)

	rootCmd.AddCommand(configCmd)
}
