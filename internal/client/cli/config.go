package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nlimbasiya24/bookadmin/internal/config"
)

func (c *Cli) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bookadmin.toml",
		// init должен работать и с повреждённым файлом, поэтому загрузка откладывается
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
	cmd.AddCommand(c.configInitCommand(), c.configShowCommand())
	return cmd
}

func (c *Cli) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path := c.flags.configPath
			if path == "" {
				path = filepath.Join(config.DefaultDir(), config.FileName)
			}

			exists, err := afero.Exists(c.fs, path)
			if err != nil {
				return fmt.Errorf("failed to check %s: %w", path, err)
			}
			if exists && !force {
				return errors.New(path + " already exists; use --force to overwrite")
			}

			cfg := config.Default(filepath.Dir(path))
			if err := config.Save(c.fs, path, &cfg); err != nil {
				return err
			}

			c.io.Printf("✓ Config written to %s\n", path)
			c.io.Printf("Set %s in the environment or a .env file before logging in.\n", config.EnvSessionSecret)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *Cli) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.configure(cmd); err != nil {
				return err
			}

			data, err := toml.Marshal(c.cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if _, err := c.io.Write(data); err != nil {
				return err
			}

			secret := "not set"
			if c.cfg.SessionSecret != "" {
				secret = "set"
			}
			c.io.Printf("\n# %s: %s\n", config.EnvSessionSecret, secret)
			return nil
		},
	}
}
