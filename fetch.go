package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"assetkit/asset"
	"assetkit/internal/logger"
	"assetkit/manifest"
	"assetkit/uti"
)

func newAdjustedCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "adjusted ID",
		Short: "Write an asset's adjustment data",
		Long: `Write the adjustment data of an edited asset to --out (stdout when unset or "-").

Exits with status 2 when the asset has no adjustment data or it could not
be loaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.adjusted(cmd.Context(), args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func newLivePhotoCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "livephoto ID",
		Short: "Show or extract the paired video of a Live Photo",
		Long: `Print the paired video resource of a Live Photo. With --out, copy its
bytes to that file ("-" for stdout).

Exits with status 2 when the asset is not a Live Photo or has no paired
video resource.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.livePhoto(cmd.Context(), args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Copy the paired video to this file")
	return cmd
}

func (a *app) findAsset(ctx context.Context, id string) (*asset.Asset, error) {
	m, err := a.loadManifest(ctx)
	if err != nil {
		return nil, err
	}
	return m.Get(id)
}

func (a *app) adjusted(ctx context.Context, id, out string) error {
	as, err := a.findAsset(ctx, id)
	if err != nil {
		return err
	}
	if !as.IsAdjust() {
		return noValue("asset %s has no adjustment data", id)
	}

	data, err := request(ctx, func(fn func([]byte)) { as.RequestAdjustedData(ctx, fn) })
	if err != nil {
		return err
	}
	if data == nil {
		return noValue("adjustment data of asset %s could not be loaded", id)
	}

	res, _ := as.AdjustResource()
	if err := a.writeData(out, data); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("adjustment data written",
		"asset", id, "uti", res.UTI, "bytes", len(data), "out", displayOut(out))
	return nil
}

func (a *app) livePhoto(ctx context.Context, id, out string) error {
	as, err := a.findAsset(ctx, id)
	if err != nil {
		return err
	}
	if !as.IsLivePhoto() {
		return noValue("asset %s is not a Live Photo", id)
	}
	res, ok := as.LivePhotoResource()
	if !ok {
		return noValue("Live Photo %s has no paired video resource", id)
	}

	if out == "" {
		mime, _ := uti.MIMEType(res.UTI)
		fmt.Fprintf(a.stdout, "UTI:       %s\n", orDash(res.UTI))
		fmt.Fprintf(a.stdout, "MIME:      %s\n", orDash(mime))
		fmt.Fprintf(a.stdout, "Filename:  %s\n", orDash(res.OriginalFilename))
		if file, isFile := res.Loader.(manifest.FileLoader); isFile {
			fmt.Fprintf(a.stdout, "Path:      %s\n", file.Path())
		}
		return nil
	}

	data, err := request(ctx, func(fn func([]byte)) { as.RequestResourceData(ctx, res, fn) })
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("failed to load paired video of asset %s", id)
	}
	if err := a.writeData(out, data); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("paired video written",
		"asset", id, "uti", res.UTI, "bytes", len(data), "out", displayOut(out))
	return nil
}

// request issues a callback-style load and waits for its single delivery.
func request(ctx context.Context, issue func(fn func([]byte))) ([]byte, error) {
	ch := make(chan []byte, 1)
	issue(func(data []byte) { ch <- data })

	select {
	case data := <-ch:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (a *app) writeData(out string, data []byte) error {
	if out == "" || out == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func displayOut(out string) string {
	if out == "" || out == "-" {
		return "stdout"
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
