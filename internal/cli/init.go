package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/config"
	"github.com/example/flowdeck/internal/db"
	"github.com/example/flowdeck/internal/ports/secondary"
	"github.com/example/flowdeck/internal/wire"
)

// InitCmd initializes ~/.flowdeck: database, schema, reward catalog, local
// user profile, and config.json.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the flowdeck database and profile",
		Long:  `Initialize the flowdeck database at ~/.flowdeck/flowdeck.db, seed the reward catalog, and create the local user profile.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")

			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			// Opening the connection applies the schema and seeds the catalog.
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			dir, err := config.Dir()
			if err != nil {
				return err
			}

			// Re-running init keeps the existing profile.
			if cfg, err := config.LoadConfig(dir); err == nil && cfg.UserID != "" {
				fmt.Printf("flowdeck already initialized at %s (user %s)\n", dbPath, cfg.UserID)
				return nil
			}

			users := wire.UserRepository()
			ctx := context.Background()

			userID, err := users.GetNextID(ctx)
			if err != nil {
				return fmt.Errorf("failed to allocate user ID: %w", err)
			}
			if name == "" {
				name = "Me"
			}
			if err := users.Create(ctx, &secondary.UserRecord{ID: userID, Name: name}); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			if err := config.SaveConfig(dir, &config.Config{
				Version: "1",
				UserID:  userID,
			}); err != nil {
				return err
			}

			fmt.Printf("✓ Initialized flowdeck at %s\n", dbPath)
			fmt.Printf("  User: %s (%s)\n", name, userID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Display name for the local profile")
	return cmd
}
