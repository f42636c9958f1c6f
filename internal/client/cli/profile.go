package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/validation"
)

func (c *Cli) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the logged in user",
	}
	cmd.AddCommand(c.profileShowCommand(), c.profileUpdateCommand())
	return cmd
}

func (c *Cli) profileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile stored in the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			user, err := svc.Auth.Profile(cmd.Context())
			if err != nil {
				return err
			}
			return profileTmpl.Execute(c.io, user)
		},
	}
}

func (c *Cli) profileUpdateCommand() *cobra.Command {
	var input validation.ProfileInput

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change first name, last name or gender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := c.services(ctx)
			if err != nil {
				return err
			}

			current, err := svc.Auth.Profile(ctx)
			if err != nil {
				return err
			}

			// Незаданные флаги запрашиваются; пустой ответ оставляет текущее значение
			fields := []struct {
				value   *string
				flag    string
				label   string
				current string
			}{
				{value: &input.FirstName, flag: "first-name", label: "First name", current: current.FirstName},
				{value: &input.LastName, flag: "last-name", label: "Last name", current: current.LastName},
				{value: &input.Gender, flag: "gender", label: "Gender (male/female/other)", current: current.Gender},
			}
			for _, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					continue
				}
				answer, err := c.io.ReadInput(fmt.Sprintf("%s [%s]: ", f.label, f.current))
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", f.flag, err)
				}
				if answer == "" {
					answer = f.current
				}
				*f.value = answer
			}

			user, err := svc.Auth.UpdateProfile(ctx, input)
			if err != nil {
				return err
			}

			c.io.Println("✓ Profile updated")
			return profileTmpl.Execute(c.io, user)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.FirstName, "first-name", "", "first name")
	flags.StringVar(&input.LastName, "last-name", "", "last name")
	flags.StringVar(&input.Gender, "gender", "", "male, female or other")
	return cmd
}
