package main

import (
	"encoding/json"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func cmdAppStash(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app-stash",
		Short: "Query and assemble application files from the app stash",
	}

	cmd.AddCommand(cmdMatches(a))
	cmd.AddCommand(cmdBundles(a))

	return cmd
}

func readManifest(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest '%s'", path)
	}

	if !json.Valid(raw) {
		return nil, errors.Errorf("manifest '%s' is not valid json", path)
	}

	return raw, nil
}

func cmdMatches(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "matches <manifest.json>",
		Short: "List the manifest entries the stash already has",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := readManifest(args[0])
			if err != nil {
				return err
			}

			ctx := a.context(cmd)
			pool, err := a.newResourcePool(ctx)
			if err != nil {
				return err
			}

			resp, err := pool.Matches(ctx, manifest)
			if err != nil {
				return err
			}

			return a.emit(json.RawMessage(resp.Body))
		},
	}
}

func cmdBundles(a *app) *cobra.Command {
	var (
		entriesPath string
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "bundles <manifest.json>",
		Short: "Assemble an application zip from the manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := readManifest(args[0])
			if err != nil {
				return err
			}

			ctx := a.context(cmd)
			pool, err := a.newResourcePool(ctx)
			if err != nil {
				return err
			}

			resp, err := pool.Bundles(ctx, manifest, entriesPath)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, resp.Body, 0o644); err != nil {
				return errors.Wrapf(err, "failed to write bundle '%s'", outputPath)
			}

			a.success("wrote %s (%s)", outputPath, humanize.Bytes(uint64(len(resp.Body))))
			return nil
		},
	}

	cmd.Flags().StringVar(&entriesPath, "entries", "", "zip of files the stash does not have yet")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "bundle.zip", "where to write the bundle")

	return cmd
}
