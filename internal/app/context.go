package app

import (
	"context"
	"fmt"

	"github.com/example/flowdeck/internal/ctxutil"
)

// userFromContext extracts the active user ID placed in the context by the
// CLI layer. Every service operation is scoped to exactly one user.
func userFromContext(ctx context.Context) (string, error) {
	userID := ctxutil.UserFromContext(ctx)
	if userID == "" {
		return "", fmt.Errorf("no active user; run: flowdeck init")
	}
	return userID, nil
}
