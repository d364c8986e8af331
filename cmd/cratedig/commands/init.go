package commands

import (
	"fmt"
	"os"

	"github.com/cratedig/cratedig/internal/config"
	"github.com/cratedig/cratedig/internal/printer"
	"github.com/spf13/cobra"
)

var forceInit bool

const starterConfig = `# cratedig configuration
# Get an API key at https://www.last.fm/api/account/create
api_key: YOUR_API_KEY_HERE

gather:
  count: 4          # candidates admitted per gather round
  similar_limit: 20 # related artists that seed the feed

tags:
  limit: 19         # top tags kept per track

# Optional Redis-backed cache for provider responses.
# cache:
#   enabled: true
#   addr: localhost:6379
#   ttl: 24h
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter cratedig.yml",
	Long: `Write a starter cratedig.yml in the current directory.

Edit the generated file and set your API key before running 'cratedig dig'.

Use --force to overwrite an existing configuration file.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing cratedig.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if !forceInit {
		if _, err := os.Stat(config.DefaultFileName); err == nil {
			return printer.Error(
				fmt.Sprintf("%s already exists", config.DefaultFileName),
				"Refusing to overwrite your existing configuration.",
				[]string{"Re-run with --force to overwrite it"},
			)
		}
	}

	if err := os.WriteFile(config.DefaultFileName, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("write %s: %w", config.DefaultFileName, err)
	}

	printer.Success("wrote %s\n", config.DefaultFileName)
	printer.Info("Set your API key, then start digging:\n  cratedig dig\n")
	return nil
}
