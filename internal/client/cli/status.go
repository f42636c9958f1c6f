package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/client/session"
	"github.com/nlimbasiya24/bookadmin/internal/client/snapshot"
)

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the session and the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.services(ctx)
			if err != nil {
				return err
			}

			c.io.Println("=== Status ===")
			c.io.Println()

			user, err := svc.Auth.Profile(ctx)
			switch {
			case errors.Is(err, session.ErrNotAuthenticated):
				c.io.Println("Status: Not authenticated")
				c.io.Println("Run 'bookadmin login' to authenticate.")
			case err != nil:
				return fmt.Errorf("failed to check authentication: %w", err)
			default:
				c.io.Println("Status: Authenticated")
				c.io.Printf("User:   %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			}

			c.io.Println()

			info, err := svc.Cache.Info(ctx)
			switch {
			case errors.Is(err, snapshot.ErrSnapshotAbsent):
				c.io.Println("Cache: empty")
				c.io.Println("Run 'bookadmin authors list' to load authors.")
			case err != nil:
				// Снимок вспомогательный: его ошибка не мешает показать статус
				c.io.Printf("Warning: failed to read cache: %v\n", err)
			default:
				c.io.Printf("Cache: %d author(s), %d book(s), saved %s\n",
					info.Authors, info.Books, humanize.Time(info.SavedAt))
			}

			return nil
		},
	}
}
