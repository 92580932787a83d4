package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optionally load environment variables from a .env file.
	_ = godotenv.Load()

	if err := newRootCmd(newApp()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bitsctl",
		Short:        "Manage packages, droplets, buildpacks and buildpack cache entries on a bits-service",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $BITS_CLIENT_CONFIG or ~/.bitsclient/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.resourceType, "resource-type", "t", "packages", "packages, droplets, buildpacks or buildpack_cache")
	rootCmd.PersistentFlags().StringVar(&a.requestID, "request-id", "", "X-VCAP-REQUEST-ID sent with every call (default a random uuid)")

	rootCmd.AddCommand(cmdExists(a))
	rootCmd.AddCommand(cmdUpload(a))
	rootCmd.AddCommand(cmdDownload(a))
	rootCmd.AddCommand(cmdCopy(a))
	rootCmd.AddCommand(cmdDelete(a))
	rootCmd.AddCommand(cmdDeleteAll(a))
	rootCmd.AddCommand(cmdURLs(a))
	rootCmd.AddCommand(cmdInternalURL(a))
	rootCmd.AddCommand(cmdMetadata(a))
	rootCmd.AddCommand(cmdAppStash(a))
	rootCmd.AddCommand(cmdConfig(a))

	return rootCmd
}
