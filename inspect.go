package main

import (
	"context"

	"github.com/spf13/cobra"

	"assetkit/asset"
	"assetkit/internal/logger"
	"assetkit/report"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [ID...]",
		Short: "Print a report for each asset in the manifest",
		Long: `Print a report for each asset in the manifest, or only for the given IDs.

With --probe (or --probe-photos / --probe-videos) the report also carries
EXIF details for still images and ffprobe details for videos and the paired
video of Live Photos. Probe failures are logged and leave that section out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd.Context(), args)
		},
	}
}

func (a *app) inspect(ctx context.Context, ids []string) error {
	log := logger.FromContext(ctx)

	m, err := a.loadManifest(ctx)
	if err != nil {
		return err
	}

	assets := m.Assets()
	if len(ids) > 0 {
		assets = make([]*asset.Asset, 0, len(ids))
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			as, err := m.Get(id)
			if err != nil {
				return err
			}
			assets = append(assets, as)
		}
	}

	reports := make([]report.AssetReport, len(assets))
	for i, as := range assets {
		reports[i] = report.New(as)
	}

	if a.cfg.Probe.Photos || a.cfg.Probe.Videos {
		if err := a.runProbes(ctx, assets, reports); err != nil {
			return err
		}
	}

	for i := range reports {
		if err := reports[i].Validate(); err != nil {
			log.Warn("inconsistent asset report", "asset", reports[i].ID, "error", err)
		}
	}

	return report.Write(a.stdout, reports, a.cfg.Output.Format)
}
