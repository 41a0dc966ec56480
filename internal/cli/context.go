// Package cli contains the cobra commands for the flowdeck CLI.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/example/flowdeck/internal/config"
	"github.com/example/flowdeck/internal/ctxutil"
)

// userContext builds a context carrying the active user from config.json.
// Every command that touches user data starts here.
func userContext() (context.Context, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("flowdeck is not initialized\nHint: run 'flowdeck init' first")
	}
	if cfg.UserID == "" {
		return nil, fmt.Errorf("no active user in config\nHint: run 'flowdeck init' to create one")
	}
	return ctxutil.WithUserID(context.Background(), cfg.UserID), nil
}

// printWarnings reports non-fatal problems (usually persistence hiccups) on
// stderr so they never pollute parseable stdout.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// formatClock renders seconds as MM:SS (or H:MM:SS past an hour).
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
