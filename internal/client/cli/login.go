package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) loginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Remote Record API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.services(ctx)
			if err != nil {
				return err
			}

			c.io.Println("=== Login ===")
			c.io.Println()

			if email == "" {
				email, err = c.io.ReadInput("Email: ")
				if err != nil {
					return fmt.Errorf("failed to read email: %w", err)
				}
			}

			password, err := c.io.ReadPassword("Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			user, err := svc.Auth.Login(ctx, email, password)
			if err != nil {
				return err
			}

			c.io.Println()
			c.io.Println("✓ Login successful!")
			c.io.Printf("Welcome, %s %s (%s)\n", user.FirstName, user.LastName, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}
