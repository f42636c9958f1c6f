package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/client/catalog"
	"github.com/nlimbasiya24/bookadmin/internal/validation"
)

func (c *Cli) booksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"book"},
		Short:   "Add, edit and delete books",
	}
	cmd.AddCommand(c.booksAddCommand(), c.booksEditCommand(), c.booksDeleteCommand())
	return cmd
}

func (c *Cli) booksAddCommand() *cobra.Command {
	var input validation.BookInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a book for an author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.services(ctx)
			if err != nil {
				return err
			}

			if input.Title == "" {
				input.Title, err = c.io.ReadInput("Title: ")
				if err != nil {
					return fmt.Errorf("failed to read title: %w", err)
				}
			}

			book, err := svc.Sync.AddBook(ctx, input)
			if err != nil && !errors.Is(err, catalog.ErrNotLoaded) {
				return err
			}

			c.io.Printf("✓ Book %q added with id %d\n", book.Title, book.ID)
			if err != nil {
				return c.staleCache(ctx, svc)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&input.AuthorID, "author", 0, "author id")
	flags.StringVar(&input.Title, "title", "", "book title")
	flags.StringVar(&input.ReleaseDate, "release-date", "", "release date (YYYY-MM-DD)")
	flags.StringVar(&input.Description, "description", "", "description")
	flags.StringVar(&input.ISBN, "isbn", "", "ISBN-10 or ISBN-13")
	flags.StringVar(&input.Format, "format", "", "format, e.g. hardcover")
	flags.IntVar(&input.NumberOfPages, "pages", 0, "number of pages")
	_ = cmd.MarkFlagRequired("author")
	return cmd
}

func (c *Cli) booksEditCommand() *cobra.Command {
	var input validation.EditBookInput

	cmd := &cobra.Command{
		Use:   "edit <author-id> <book-id>",
		Short: "Edit title, description or format of a cached book",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			authorID, bookID, err := parseBookArgs(args)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("format") {
				return errors.New("nothing to change: use --title, --description or --format")
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

			current, ok := view.Book(bookID)
			if !ok {
				return fmt.Errorf("author %d has no book %d", authorID, bookID)
			}

			// Незаданные поля отправляются как есть
			if !flags.Changed("title") {
				input.Title = current.Title
			}
			if !flags.Changed("description") {
				input.Description = current.Description
			}
			if !flags.Changed("format") {
				input.Format = current.Format
			}

			updated, err := svc.Sync.EditBook(ctx, view, bookID, input)
			if err != nil && !errors.Is(err, catalog.ErrNotLoaded) {
				return err
			}

			c.io.Printf("✓ Book %d saved (%s)\n", bookID, view.State(bookID))
			c.io.Printf("Title:       %s\n", updated.Title)
			c.io.Printf("Format:      %s\n", updated.Format)
			c.io.Printf("Description: %s\n", updated.Description)
			if err != nil {
				return c.staleCache(ctx, svc)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Title, "title", "", "new title")
	flags.StringVar(&input.Description, "description", "", "new description")
	flags.StringVar(&input.Format, "format", "", "new format")
	return cmd
}
