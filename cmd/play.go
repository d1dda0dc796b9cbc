package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gochijan/gochijan/game"
	"github.com/gochijan/gochijan/game/config"
)

var (
	playTemplate   int    // Template slot to load before starting (-1: last used)
	playSeedPrefix string // Fixed seed prefix for reproducible matches
)

const playHelp = `commands:
  p1 <hand> | p2 <hand>   winner and the loser's hand (rock/scissors/paper, gu/choki/pa)
  undo                    revert the last award
  hide <hand>             hide that hand's food from the next round on
  reroll                  draw a new preview
  score                   show the scores
  reset                   zero both scores
  again                   rematch with the same settings
  quit`

// playCmd runs a match on stdin/stdout.
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, closeDB, err := openConfigStore(ctx, true)
		if err != nil {
			return err
		}
		defer closeDB()

		if playTemplate >= 0 {
			if err := store.LoadTemplate(playTemplate); err != nil {
				return err
			}
		}

		var opts []game.MatchOption
		if playSeedPrefix != "" {
			n := 0
			opts = append(opts, game.WithSeedFunc(func() string {
				n++
				return fmt.Sprintf("%s-%d", playSeedPrefix, n)
			}))
		}
		m := game.NewMatch(store, opts...)

		if err := runPlay(cmd.InOrStdin(), cmd.OutOrStdout(), store, m); err != nil {
			return err
		}
		// Hidden foods stay hidden next session.
		return store.SaveAsLast(ctx)
	},
}

// runPlay drives m from line commands until quit or end of input.
func runPlay(in io.Reader, out io.Writer, store *config.Store, m *game.Match) error {
	cfg, ok := store.Config()
	if !ok {
		return config.ErrNoConfig
	}
	m.StartMatch(cfg)
	m.NewPreview()
	printRound(out, m)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		err := playCommand(out, store, m, fields)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

var errQuit = errors.New("quit")

func playCommand(out io.Writer, store *config.Store, m *game.Match, fields []string) error {
	switch fields[0] {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(out, playHelp)
	case "score":
		printScores(out, m)
	case "undo":
		if _, ok := m.LastAward(); !ok {
			return errors.New("nothing to undo")
		}
		m.Undo()
		printScores(out, m)
	case "reroll":
		m.NewPreview()
		printRound(out, m)
	case "reset":
		m.ResetMatch()
		m.NewPreview()
		printRound(out, m)
	case "again":
		cfg, ok := store.Config()
		if !ok {
			return config.ErrNoConfig
		}
		m.Rematch(cfg)
		printRound(out, m)
	case "hide":
		if len(fields) != 2 {
			return errors.New("usage: hide <hand>")
		}
		h, err := game.ParseHand(fields[1])
		if err != nil {
			return err
		}
		pv, _ := m.Preview()
		cmd, ok := pv.HideHand(h)
		if !ok {
			return fmt.Errorf("no food on %s", h)
		}
		store.Apply(cmd)
		fmt.Fprintf(out, "%s hidden from the next round\n", pv.Item(h).Food.Name)
	default:
		winner, err := game.ParsePlayer(fields[0])
		if err != nil {
			return fmt.Errorf("unknown command %q (try help)", fields[0])
		}
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s <loser's hand>", winner)
		}
		hand, err := game.ParseHand(fields[1])
		if err != nil {
			return err
		}
		if _, done := m.Winner(); done {
			return errors.New("the match is over: again or quit")
		}
		pv, _ := m.Preview()
		item := pv.Item(hand)
		m.ConfirmTurn(winner, hand)
		if item.Food != nil {
			fmt.Fprintf(out, "%s wins %s: +%d\n", m.Player(winner).Name, item.Food.Name, item.Points)
		} else {
			fmt.Fprintf(out, "%s wins nothing on %s\n", m.Player(winner).Name, hand)
		}
		if w, done := m.Winner(); done {
			printScores(out, m)
			fmt.Fprintf(out, "%s wins the match! (again / quit)\n", m.Player(w).Name)
			logrus.Infof("match finished: %s", m.Player(w).Name)
			return nil
		}
		printRound(out, m)
	}
	return nil
}

func printScores(w io.Writer, m *game.Match) {
	p := m.Players()
	rule, _ := m.Rule()
	fmt.Fprintf(w, "%s %d - %d %s (first to %d)\n", p[0].Name, p[0].Points, p[1].Points, p[1].Name, rule.PointTarget)
}

func printRound(w io.Writer, m *game.Match) {
	printScores(w, m)
	if pv, ok := m.Preview(); ok {
		printPreview(w, pv)
	}
}

func init() {
	playCmd.Flags().IntVar(&playTemplate, "template", -1, "Template slot (0-2) to play with instead of the last used configuration")
	playCmd.Flags().StringVar(&playSeedPrefix, "seed-prefix", "", "Seed prefix for reproducible rounds (default: random seeds)")

	rootCmd.AddCommand(playCmd)
}
