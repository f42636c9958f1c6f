package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/client/catalog"
)

func (c *Cli) authorsDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <author-id>",
		Short: "Delete an author without books",
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

			ok, err := c.confirm(yes, fmt.Sprintf("Delete author %d?", authorID))
			if err != nil || !ok {
				return err
			}

			err = svc.Sync.DeleteAuthor(ctx, authorID)
			switch {
			case errors.Is(err, catalog.ErrNotLoaded):
				return c.redirectToList(ctx, svc, fmt.Sprintf("Author %d is not in the local cache.", authorID))
			case errors.Is(err, catalog.ErrAuthorHasBooks):
				return fmt.Errorf("author %d still has books; delete them first", authorID)
			case err != nil:
				return err
			}

			c.io.Printf("✓ Author %d deleted\n", authorID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *Cli) booksDeleteCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <author-id> <book-id>",
		Short: "Delete a book of a cached author",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			authorID, bookID, err := parseBookArgs(args)
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

			book, found := view.Book(bookID)
			if !found {
				return fmt.Errorf("author %d has no book %d", authorID, bookID)
			}

			ok, err := c.confirm(yes, fmt.Sprintf("Delete %q?", book.Title))
			if err != nil || !ok {
				return err
			}

			err = svc.Sync.DeleteBook(ctx, view, bookID)
			if err != nil && !errors.Is(err, catalog.ErrNotLoaded) {
				return err
			}

			c.io.Printf("✓ Book %d deleted (%s)\n", bookID, view.State(bookID))
			if err != nil {
				return c.staleCache(ctx, svc)
			}
			author := view.Author()
			c.io.Printf("%s now has %d book(s)\n", author.FullName(), author.BookCount)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm спрашивает подтверждение, если оно не дано флагом --yes
func (c *Cli) confirm(yes bool, question string) (bool, error) {
	if yes {
		return true, nil
	}
	ok, err := c.io.Confirm(question)
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		c.io.Println("Cancelled.")
	}
	return ok, nil
}

// staleCache сообщает, что API принял изменение, а снимок устарел
func (c *Cli) staleCache(ctx context.Context, svc *Services) error {
	c.io.Println()
	return c.redirectToList(ctx, svc, "The change was saved, but the local cache is out of date.")
}

func parseBookArgs(args []string) (int64, int64, error) {
	authorID, err := parseID("author", args[0])
	if err != nil {
		return 0, 0, err
	}
	bookID, err := parseID("book", args[1])
	if err != nil {
		return 0, 0, err
	}
	return authorID, bookID, nil
}
