package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cratedig/cratedig/internal/printer"
	"github.com/spf13/cobra"
)

var (
	infoConfigPath string
	infoJSON       bool
)

var infoCmd = &cobra.Command{
	Use:   "info ARTIST TRACK",
	Short: "Look up a single track",
	Long: `Look up a single track and print its metadata.

Useful for checking what the provider knows about a track before seeding
a session with it, and for verifying the API key and cache configuration.

Examples:
  cratedig info "Gillian Welch" "Revelator"
  cratedig info --json "Gillian Welch" "Revelator"`,
	Args: cobra.ExactArgs(2),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoConfigPath, "config", "c", "", "Path to cratedig.yml (searched for if omitted)")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print the record as JSON")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(infoConfigPath)
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

	info, err := provider.GetTrackInfo(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("look up %q by %q: %w", args[1], args[0], err)
	}

	if infoJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("%-10s %s\n", "Track", info.Name)
	fmt.Printf("%-10s %s\n", "Artist", info.Artist)
	fmt.Printf("%-10s %d\n", "Listeners", info.Listeners)
	fmt.Printf("%-10s %d\n", "Playcount", info.Playcount)
	fmt.Printf("%-10s %d\n", "Duration", info.Duration)
	if info.URL != "" {
		fmt.Printf("%-10s %s\n", "URL", info.URL)
	}
	return nil
}
