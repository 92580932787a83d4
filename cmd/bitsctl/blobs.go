package main

import (
	"encoding/json"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rmorlok/bitsclient/blobstore"
	"github.com/rmorlok/bitsclient/blobstore/signature"
	"github.com/spf13/cobra"
)

func cmdExists(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <key>",
		Short: "Report whether a key is present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			exists, err := bs.Exists(ctx, args[0])
			if err != nil {
				return err
			}

			return a.emit(map[string]any{"key": args[0], "exists": exists})
		},
	}
}

func cmdUpload(a *app) *cobra.Command {
	var resourcesPath string

	cmd := &cobra.Command{
		Use:   "upload <key> [file]",
		Short: "Upload a file under a key. Without a file an empty zip is uploaded",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			in := blobstore.UploadInput{Key: args[0]}
			if len(args) == 2 {
				in.SourcePath = args[1]
			}

			if resourcesPath != "" {
				raw, err := os.ReadFile(resourcesPath)
				if err != nil {
					return errors.Wrapf(err, "failed to read resources '%s'", resourcesPath)
				}
				if !json.Valid(raw) {
					return errors.Errorf("resources '%s' is not valid json", resourcesPath)
				}
				in.Resources = json.RawMessage(raw)
			}

			sums, err := bs.Upload(ctx, in)
			if err != nil {
				return err
			}

			return a.emit(sums)
		},
	}

	cmd.Flags().StringVar(&resourcesPath, "resources", "", "json file sent as the resources field")

	return cmd
}

func cmdDownload(a *app) *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "download <key> <destination>",
		Short: "Download a key to a local file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			in := blobstore.DownloadInput{Key: args[0], DestinationPath: args[1]}
			if mode != "" {
				m, err := strconv.ParseUint(mode, 8, 32)
				if err != nil {
					return errors.Wrapf(err, "invalid mode '%s'", mode)
				}
				fm := os.FileMode(m)
				in.Mode = &fm
			}

			if err := bs.Download(ctx, in); err != nil {
				return err
			}

			size := "unknown size"
			if fi, err := os.Stat(args[1]); err == nil {
				size = humanize.Bytes(uint64(fi.Size()))
			}

			a.success("downloaded %s to %s (%s)", args[0], args[1], size)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "octal file mode applied to the downloaded file")

	return cmd
}

func cmdCopy(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <source-key> <destination-key>",
		Short: "Copy a blob to another key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			sums, err := bs.CopyBetweenKeys(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			return a.emit(sums)
		},
	}
}

func cmdDelete(a *app) *cobra.Command {
	var ignoreMissing bool

	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			b, err := bs.Blob(args[0])
			if err != nil {
				return err
			}

			err = bs.DeleteBlob(ctx, b)
			if ignoreMissing && errors.Is(err, blobstore.ErrNotFound) {
				a.warn("%s was not present", args[0])
				return nil
			}
			if err != nil {
				return err
			}

			a.success("deleted %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreMissing, "ignore-missing", false, "succeed when the key does not exist")

	return cmd
}

func cmdDeleteAll(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every buildpack cache entry, or those below --path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			if path == "" {
				err = bs.DeleteAll(ctx)
			} else {
				err = bs.DeleteAllInPath(ctx, path)
			}
			if err != nil {
				return err
			}

			a.success("deleted all %s entries", bs.ResourceType())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "only delete entries below this path")

	return cmd
}

type urlsJson struct {
	Key         string `json:"key"`
	DownloadURL string `json:"download_url"`
	UploadURL   string `json:"upload_url"`
	Expires     string `json:"expires,omitempty"`
}

func cmdURLs(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "urls <key>",
		Short: "Print signed public download and upload URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			b, err := bs.Blob(args[0])
			if err != nil {
				return err
			}

			out := urlsJson{
				Key:         b.Key(),
				DownloadURL: b.PublicDownloadURL(ctx),
				UploadURL:   b.PublicUploadURL(ctx),
			}

			if expires, ok := expiresOf(out.DownloadURL); ok {
				out.Expires = humanize.Time(expires)
			}

			return a.emit(out)
		},
	}
}

func expiresOf(raw string) (time.Time, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return time.Time{}, false
	}

	secs, err := strconv.ParseInt(u.Query().Get(signature.QueryExpires), 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(secs, 0), true
}

func cmdInternalURL(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "internal-url <key>",
		Short: "Print the URL a key is downloaded from inside the platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			b, err := bs.Blob(args[0])
			if err != nil {
				return err
			}

			u, err := b.InternalDownloadURL(ctx)
			if err != nil {
				return err
			}

			return a.emit(map[string]string{"key": args[0], "url": u})
		},
	}
}

func cmdMetadata(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata <key>",
		Short: "Print the metadata the service holds for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd)
			bs, err := a.blobstore(ctx)
			if err != nil {
				return err
			}

			meta, err := bs.BuildpackMetadata(ctx, args[0])
			if err != nil {
				return err
			}

			return a.emit(meta)
		},
	}
}
