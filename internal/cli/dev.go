package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/config"
	"github.com/example/flowdeck/internal/db"
)

var devCmd = &cobra.Command{
	Use:    "dev",
	Short:  "Developer tools",
	Hidden: true,
}

var devSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with development fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(dir)
		if err != nil {
			return fmt.Errorf("flowdeck is not initialized\nHint: run 'flowdeck init' first")
		}

		database, err := db.GetDB()
		if err != nil {
			return err
		}
		if err := db.SeedFixtures(database, cfg.UserID); err != nil {
			return err
		}

		fmt.Println("✓ Seeded development fixtures")
		return nil
	},
}

func init() {
	devCmd.AddCommand(devSeedCmd)
}

// DevCmd returns the dev command tree.
func DevCmd() *cobra.Command {
	return devCmd
}
