package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/flowdeck/internal/ports/primary"
	"github.com/example/flowdeck/internal/wire"
)

var visionCmd = &cobra.Command{
	Use:   "vision",
	Short: "Manage the vision board",
	Long:  "Add, list, and remove vision board tiles",
}

var visionAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a tile to the board",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}
		caption, _ := cmd.Flags().GetString("caption")

		resp, err := wire.VisionService().AddTile(ctx, primary.AddTileRequest{
			Title:   args[0],
			Caption: caption,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Added tile %s: %s\n", resp.Tile.ID, resp.Tile.Title)
		for _, reward := range resp.Granted {
			banner := color.New(color.FgYellow, color.Bold).Sprintf("★ Reward earned: %s", reward.Name)
			fmt.Printf("%s\n  %s\n", banner, reward.Description)
		}
		return nil
	},
}

var visionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List board tiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		tiles, err := wire.VisionService().ListTiles(ctx)
		if err != nil {
			return err
		}
		if len(tiles) == 0 {
			fmt.Println("The board is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCAPTION")
		for _, tile := range tiles {
			fmt.Fprintf(w, "%s\t%s\t%s\n", tile.ID, tile.Title, tile.Caption)
		}
		return w.Flush()
	},
}

var visionRemoveCmd = &cobra.Command{
	Use:     "rm [tile-id]",
	Aliases: []string{"remove"},
	Short:   "Remove a tile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := userContext()
		if err != nil {
			return err
		}

		if err := wire.VisionService().RemoveTile(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Removed %s\n", args[0])
		return nil
	},
}

func init() {
	visionAddCmd.Flags().String("caption", "", "Caption shown under the tile")

	visionCmd.AddCommand(visionAddCmd)
	visionCmd.AddCommand(visionListCmd)
	visionCmd.AddCommand(visionRemoveCmd)
}

// VisionCmd returns the vision command tree.
func VisionCmd() *cobra.Command {
	return visionCmd
}
