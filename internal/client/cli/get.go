package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/client/catalog"
)

func (c *Cli) authorsShowCommand() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "show <author-id>",
		Short: "Show a cached author and their books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			authorID, err := parseID("author", args[0])
			if err != nil {
				return err
			}

			svc, err := c.services(ctx)
			if err != nil {
				return err
			}

			view, err := svc.Sync.Open(ctx, authorID)
			if errors.Is(err, catalog.ErrNotLoaded) {
				return c.redirectToList(ctx, svc, fmt.Sprintf("Author %d is not in the local cache.", authorID))
			}
			if err != nil {
				return err
			}

			author := view.Author()
			if err := authorTmpl.Execute(c.io, &author); err != nil {
				return fmt.Errorf("failed to print author: %w", err)
			}

			books := view.Filter(search)
			query := view.Query()
			if len(author.Books) == 0 {
				c.io.Println("No books.")
				return nil
			}
			if len(books) == 0 {
				c.io.Printf("No books match %q.\n", query)
				return nil
			}
			if err := printBooksTable(c.io, books); err != nil {
				return fmt.Errorf("failed to print books: %w", err)
			}
			if query != "" {
				c.io.Println()
				c.io.Printf("Showing %d of %d books matching %q\n", len(books), len(author.Books), query)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "filter books by title, format or release date")
	return cmd
}
