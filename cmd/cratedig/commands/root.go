package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cratedig",
	Short: "Cratedig - conversational next-song recommender",
	Long: `Cratedig recommends your next song, one track at a time.

Give it a track you love and it works a shared blackboard: independent
knowledge sources gather similar tracks, argue over tags and play counts,
and an arbiter presents the best pick. Every yes or no from you feeds
straight back into their reasoning.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
