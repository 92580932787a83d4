package main

import (
	"fmt"
	"os"

	"github.com/rmorlok/bitsclient/internal/config"
	"github.com/spf13/cobra"
)

func cmdConfig(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the client configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.SchemaJSON()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(a.out, string(data))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the config file against the schema and load it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(a.configPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := config.ValidateSchema(data); err != nil {
				return err
			}

			if _, err := a.loadConfig(); err != nil {
				return err
			}

			a.success("configuration is valid")
			return nil
		},
	})

	return cmd
}
