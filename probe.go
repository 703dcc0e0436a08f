package main

import (
	"bytes"
	"context"
	"fmt"

	"assetkit/asset"
	"assetkit/ffprobe"
	"assetkit/internal/logger"
	"assetkit/manifest"
	"assetkit/orchestrator"
	"assetkit/photo"
	"assetkit/report"
)

// runProbes fills the Photo and Video sections of reports, which must be
// parallel to assets. Individual probe failures are logged, not returned.
func (a *app) runProbes(ctx context.Context, assets []*asset.Asset, reports []report.AssetReport) error {
	log := logger.FromContext(ctx)

	workers := a.cfg.Probe.Workers
	orch := orchestrator.NewDAGOrchestrator([]orchestrator.ResourceConstraint{
		{Type: orchestrator.ResourceRead, MaxSlots: workers},
		{Type: orchestrator.ResourceCPU, MaxSlots: workers},
		{Type: orchestrator.ResourceProbe, MaxSlots: workers},
	})

	prober := ffprobe.New(a.cfg.Probe.FFprobePath, a.cfg.Probe.Timeout)
	for i, as := range assets {
		if err := a.addProbeTasks(orch, prober, as, &reports[i]); err != nil {
			return err
		}
	}

	orch.SetProgressCallback(func(completed, total int, r orchestrator.TaskResult) {
		if r.Success() {
			log.Debug("probe finished", "task", r.ID, "took", r.Duration, "done", completed, "total", total)
			return
		}
		log.Warn("probe failed", "task", r.ID, "error", r.Err)
	})

	if _, err := orch.Execute(ctx); err != nil {
		return fmt.Errorf("failed to run probes: %w", err)
	}

	stats := orch.GetStats()
	log.Debug("probes done", "total", stats.Total, "completed", stats.Completed, "failed", stats.Failed)
	return ctx.Err()
}

// addProbeTasks queues the probes that apply to as. Results are written
// into r; each task owns a distinct field.
func (a *app) addProbeTasks(orch *orchestrator.DAGOrchestrator, prober *ffprobe.Prober, as *asset.Asset, r *report.AssetReport) error {
	if a.cfg.Probe.Photos && as.IsImage() {
		if res, ok := as.PrimaryResource(); ok {
			var data []byte
			loadID := "load/" + as.LocalID

			load := &orchestrator.Task{
				ID:       loadID,
				Resource: orchestrator.ResourceRead,
				Run: func(ctx context.Context) error {
					d, ok, err := as.ResourceData(ctx, res).Wait(ctx)
					if err != nil {
						return err
					}
					if !ok {
						return fmt.Errorf("no data for %s resource", res.Kind)
					}
					data = d
					return nil
				},
			}
			exif := &orchestrator.Task{
				ID:           "exif/" + as.LocalID,
				Resource:     orchestrator.ResourceCPU,
				Dependencies: []string{loadID},
				Run: func(ctx context.Context) error {
					details, err := photo.ReadDetails(bytes.NewReader(data))
					if err != nil {
						return err
					}
					r.Photo = details
					return nil
				},
			}
			if err := orch.AddTask(load); err != nil {
				return err
			}
			if err := orch.AddTask(exif); err != nil {
				return err
			}
		}
	}

	if a.cfg.Probe.Videos {
		if kind, path, ok := videoSource(as); ok {
			task := &orchestrator.Task{
				ID:       "ffprobe/" + as.LocalID,
				Resource: orchestrator.ResourceProbe,
				Run: func(ctx context.Context) error {
					pr, err := prober.Probe(ctx, path)
					if err != nil {
						return err
					}
					r.Video = report.NewVideoDetails(kind, pr)
					return nil
				},
			}
			if err := orch.AddTask(task); err != nil {
				return err
			}
		}
	}

	return nil
}

// videoSource picks the file ffprobe should read: the primary resource of a
// video, or the paired video of a Live Photo. ffprobe needs a path, so only
// file-backed resources qualify.
func videoSource(a *asset.Asset) (asset.ResourceKind, string, bool) {
	var (
		res asset.Resource
		ok  bool
	)
	switch {
	case a.IsVideo():
		res, ok = a.PrimaryResource()
	case a.IsLivePhoto():
		res, ok = a.LivePhotoResource()
	}
	if !ok {
		return asset.ResourceKindOther, "", false
	}

	file, isFile := res.Loader.(manifest.FileLoader)
	if !isFile {
		return asset.ResourceKindOther, "", false
	}
	return res.Kind, file.Path(), true
}
