package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist campus configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shown := *c.cfg
			if shown.APIKey != "" {
				shown.APIKey = "****"
			}
			data, err := yaml.Marshal(&shown)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", c.mgr.ConfigPath())
			_, err = out.Write(data)
			if env := c.cfg.MissingCredential(); env != "" {
				fmt.Fprintf(out, "# warning: %s is not set\n", env)
			}
			return err
		},
	})

	var overwrite bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to campus.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.mgr.Exists() && !overwrite {
				return fmt.Errorf("%s already exists (use --overwrite)", c.mgr.ConfigPath())
			}
			if err := c.mgr.Save(c.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", c.mgr.ConfigPath())
			return nil
		},
	}
	initCmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
