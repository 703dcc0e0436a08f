package asset

import (
	"context"
	"errors"
	"log/slog"

	"assetkit/internal/logger"
)

// ErrNoLoader is logged when a resource exists but the host gave it no
// Loader.
var ErrNoLoader = errors.New("resource has no loader")

// DataFuture is the single-shot result of a resource load. A nil payload
// means no value: the resource was missing, unreadable or failed to load.
type DataFuture struct {
	done chan struct{}
	data []byte
}

// Done is closed once the result is available.
func (f *DataFuture) Done() <-chan struct{} { return f.done }

// Result blocks until the load finishes.
func (f *DataFuture) Result() ([]byte, bool) {
	<-f.done
	return f.data, f.data != nil
}

// Wait is Result bounded by ctx. Giving up does not stop the load.
func (f *DataFuture) Wait(ctx context.Context) ([]byte, bool, error) {
	select {
	case <-f.done:
		return f.data, f.data != nil, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// AdjustedData starts loading the adjustment resource and returns at once.
func (a *Asset) AdjustedData(ctx context.Context) *DataFuture {
	r, ok := a.AdjustResource()
	return load(ctx, a.LocalID, r, ok)
}

// RequestAdjustedData loads the adjustment resource and hands the bytes to
// fn exactly once, after this call has returned and on another goroutine.
// fn receives nil when there is no adjustment resource or the load failed.
// Cancelling ctx does not abort the load.
func (a *Asset) RequestAdjustedData(ctx context.Context, fn func(data []byte)) {
	deliver(a.AdjustedData(ctx), fn)
}

// RequestResourceData is RequestAdjustedData for an arbitrary resource of
// the asset, e.g. the one returned by LivePhotoResource.
func (a *Asset) RequestResourceData(ctx context.Context, r Resource, fn func(data []byte)) {
	deliver(a.ResourceData(ctx, r), fn)
}

// ResourceData starts loading r and returns at once.
func (a *Asset) ResourceData(ctx context.Context, r Resource) *DataFuture {
	return load(ctx, a.LocalID, r, true)
}

func deliver(f *DataFuture, fn func([]byte)) {
	if fn == nil {
		return
	}
	issued := make(chan struct{})
	defer close(issued)

	go func() {
		<-issued
		data, _ := f.Result()
		fn(data)
	}()
}

func load(ctx context.Context, assetID string, r Resource, present bool) *DataFuture {
	f := &DataFuture{done: make(chan struct{})}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContext(ctx).With(
		slog.String("asset", assetID),
		slog.String("resource", r.Kind.String()),
	)

	issued := make(chan struct{})
	defer close(issued)

	go func() {
		<-issued
		defer close(f.done)

		if !present {
			return
		}
		if r.Loader == nil {
			log.Debug("resource data unavailable", slog.Any("error", ErrNoLoader))
			return
		}
		data, err := r.Loader.Load(ctx)
		if err != nil {
			log.Debug("resource data load failed", slog.Any("error", err))
			return
		}
		if data == nil {
			data = []byte{}
		}
		f.data = data
	}()
	return f
}
