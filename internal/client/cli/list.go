package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) authorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "authors",
		Aliases: []string{"author"},
		Short:   "List, inspect and delete authors",
	}
	cmd.AddCommand(c.authorsListCommand(), c.authorsShowCommand(), c.authorsDeleteCommand())
	return cmd
}

func (c *Cli) authorsListCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load a page of authors with their books into the local cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			return c.runList(cmd.Context(), svc, page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

// runList загружает страницу и печатает авторов.
// Каждый вызов перезаписывает локальный снимок.
func (c *Cli) runList(ctx context.Context, svc *Services, page int) error {
	result, err := svc.Loader.LoadPage(ctx, page)
	if err != nil {
		return err
	}

	c.io.Println("=== Authors ===")
	c.io.Println()

	if len(result.Authors) == 0 {
		c.io.Println("No authors found.")
	} else if err := printAuthorsTable(c.io, result.Authors); err != nil {
		return fmt.Errorf("failed to print authors: %w", err)
	}

	c.io.Println()
	c.io.Printf("Page %d of %d\n", result.CurrentPage, result.TotalPages)
	if result.CurrentPage < result.TotalPages {
		c.io.Printf("Next page: bookadmin authors list --page %d\n", result.CurrentPage+1)
	}

	if len(result.Failures) > 0 {
		c.io.Println()
		c.io.Printf("⚠️  %d author(s) could not be loaded and are not cached:\n", len(result.Failures))
		for _, f := range result.Failures {
			c.io.Printf("   author %d: %v\n", f.AuthorID, f.Err)
		}
	}

	return nil
}

// redirectToList печатает подсказку и показывает первую страницу списка,
// как это делает переход на /authors/list при отсутствии данных в снимке
func (c *Cli) redirectToList(ctx context.Context, svc *Services, reason string) error {
	c.io.Printf("%s Reloading the authors list...\n", reason)
	c.io.Println()
	return c.runList(ctx, svc, 1)
}
