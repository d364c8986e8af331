package commands

import (
	"context"
	"os"

	"github.com/cratedig/cratedig/internal/arbiter"
	"github.com/cratedig/cratedig/internal/printer"
	"github.com/cratedig/cratedig/internal/session"
	"github.com/cratedig/cratedig/internal/sources"
	"github.com/cratedig/cratedig/pkg/board"
	"github.com/spf13/cobra"
)

var (
	digConfigPath string
	digArtist     string
	digTrack      string
	digCount      int
)

var digCmd = &cobra.Command{
	Use:   "dig",
	Short: "Start an interactive recommendation session",
	Long: `Start an interactive recommendation session.

Cratedig seeds the blackboard with your chosen track, gathers the top
tracks of similar artists into a candidate pool, and presents one
recommendation at a time. Answer yes or no and the knowledge sources
revise their hypotheses until you find a keeper or the crate runs dry.

Examples:
  # Prompt for the seed track
  cratedig dig

  # Seed from the command line
  cratedig dig --artist "Townes Van Zandt" --track "Pancho and Lefty"`,
	RunE: runDig,
}

func init() {
	digCmd.Flags().StringVarP(&digConfigPath, "config", "c", "", "Path to cratedig.yml (searched for if omitted)")
	digCmd.Flags().StringVarP(&digArtist, "artist", "a", "", "Seed artist (prompted for if omitted)")
	digCmd.Flags().StringVarP(&digTrack, "track", "t", "", "Seed track (prompted for if omitted)")
	digCmd.Flags().IntVarP(&digCount, "count", "n", 0, "Candidates gathered per round (default from config)")
	rootCmd.AddCommand(digCmd)
}

func runDig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(digConfigPath)
	if err != nil {
		return printer.Error(
			"configuration not found",
			err.Error(),
			[]string{"Create a starter config:\n  cratedig init"},
		)
	}

	provider, cleanup, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	count := digCount
	if count <= 0 {
		count = cfg.Gather.Count
	}

	ws := board.New()
	seed := sources.NewSeed(ws, provider)
	gatherer := sources.NewGatherer(ws, provider, cfg.Gather.SimilarLimit)
	playcount := sources.NewPlaycountMatcher(ws)
	tags := sources.NewTagMatcher(ws, provider, cfg.Tags.Limit)
	arb := arbiter.New(ws, playcount, tags, gatherer, count)

	sess := session.New(ws, seed, gatherer, arb, os.Stdin, os.Stdout, count)
	return sess.Run(context.Background(), digArtist, digTrack)
}
