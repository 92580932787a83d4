package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/blobstore"
	"github.com/rmorlok/bitsclient/internal/bctx"
	"github.com/rmorlok/bitsclient/internal/config"
	"github.com/spf13/cobra"
)

type app struct {
	configPath   string
	resourceType string
	requestID    string

	out io.Writer

	root *config.Root

	newBlobstore    func(ctx context.Context, rt blobstore.ResourceType) (blobstore.Blobstore, error)
	newResourcePool func(ctx context.Context) (blobstore.ResourcePoolClient, error)
}

func newApp() *app {
	a := &app{out: os.Stdout}
	a.newBlobstore = a.blobstoreFromConfig
	a.newResourcePool = a.resourcePoolFromConfig
	return a
}

func (a *app) loadConfig() (*config.Root, error) {
	if a.root != nil {
		return a.root, nil
	}

	path, err := config.ResolvePath(a.configPath)
	if err != nil {
		return nil, err
	}

	root, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	a.root = root
	return root, nil
}

func (a *app) logger() *slog.Logger {
	return a.root.GetRootLogger()
}

// context carries the request id for the command. One is minted when the flag is not set.
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if a.requestID != "" {
		ctx = bctx.WithRequestID(ctx, a.requestID)
	}

	return bctx.EnsureRequestID(ctx)
}

func (a *app) blobstore(ctx context.Context) (blobstore.Blobstore, error) {
	rt, err := blobstore.ParseResourceType(a.resourceType)
	if err != nil {
		return nil, err
	}

	return a.newBlobstore(ctx, rt)
}

func (a *app) blobstoreFromConfig(ctx context.Context, rt blobstore.ResourceType) (blobstore.Blobstore, error) {
	root, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	cfg, err := root.BitsService.BlobstoreConfig(ctx)
	if err != nil {
		return nil, err
	}

	return blobstore.NewClient(cfg, rt, blobstore.WithLogger(a.logger()))
}

func (a *app) resourcePoolFromConfig(_ context.Context) (blobstore.ResourcePoolClient, error) {
	root, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	if root.AppStash == nil {
		return nil, errors.New("app_stash is not configured")
	}

	return blobstore.NewResourcePool(root.AppStash.PoolConfig(), blobstore.WithLogger(a.logger()))
}

func (a *app) emit(v any) error {
	formatted, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(a.out, string(formatted))
	return err
}

func (a *app) success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(a.out, format+"\n", args...)
}

func (a *app) warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(a.out, format+"\n", args...)
}
