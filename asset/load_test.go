package asset

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetkit/uti"
)

const waitTimeout = 2 * time.Second

// collect issues fn and returns a channel fed by each callback invocation.
func collect(t *testing.T, issue func(fn func([]byte))) <-chan []byte {
	t.Helper()
	ch := make(chan []byte, 2)
	issue(func(data []byte) { ch <- data })
	return ch
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(waitTimeout):
		t.Fatal("callback was not invoked")
		return nil
	}
}

func assertNoSecondCall(t *testing.T, ch <-chan []byte) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("callback invoked more than once")
	case <-time.After(20 * time.Millisecond):
	}
}

func adjustedAsset(l Loader) *Asset {
	return &Asset{
		LocalID:   "edited-1",
		MediaKind: MediaKindImage,
		Resources: []Resource{
			{Kind: ResourceKindFullSizeImage, UTI: uti.JPEG},
			{Kind: ResourceKindAdjustmentData, UTI: uti.AdjustPlist, Loader: l},
		},
	}
}

func TestRequestAdjustedData_NoAdjustment(t *testing.T) {
	a := &Asset{MediaKind: MediaKindImage, Resources: []Resource{{Kind: ResourceKindFullSizeImage}}}

	ch := collect(t, func(fn func([]byte)) { a.RequestAdjustedData(context.Background(), fn) })

	assert.Nil(t, receive(t, ch))
	assertNoSecondCall(t, ch)
}

func TestRequestAdjustedData_DoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		<-release
		return []byte("plist"), nil
	}))

	returned := make(chan struct{})
	var ch <-chan []byte
	go func() {
		ch = collect(t, func(fn func([]byte)) { a.RequestAdjustedData(context.Background(), fn) })
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(waitTimeout):
		t.Fatal("RequestAdjustedData blocked on the loader")
	}

	close(release)
	assert.Equal(t, []byte("plist"), receive(t, ch))
	assertNoSecondCall(t, ch)
}

func TestRequestAdjustedData_LoadFailure(t *testing.T) {
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		return nil, errors.New("icloud download failed")
	}))

	ch := collect(t, func(fn func([]byte)) { a.RequestAdjustedData(context.Background(), fn) })
	assert.Nil(t, receive(t, ch))
}

func TestRequestAdjustedData_NoLoader(t *testing.T) {
	ch := collect(t, func(fn func([]byte)) { adjustedAsset(nil).RequestAdjustedData(context.Background(), fn) })
	assert.Nil(t, receive(t, ch))
}

func TestRequestAdjustedData_EmptyPayloadIsAValue(t *testing.T) {
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		return nil, nil
	}))

	ch := collect(t, func(fn func([]byte)) { a.RequestAdjustedData(context.Background(), fn) })
	data := receive(t, ch)
	require.NotNil(t, data)
	assert.Empty(t, data)
}

func TestRequestAdjustedData_IgnoresCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte("edits"), nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	ch := collect(t, func(fn func([]byte)) { a.RequestAdjustedData(ctx, fn) })

	<-started
	cancel()
	close(release)

	assert.Equal(t, []byte("edits"), receive(t, ch))
}

func TestRequestAdjustedData_UsesFirstAdjustment(t *testing.T) {
	var calls atomic.Int32
	a := &Asset{Resources: []Resource{
		{Kind: ResourceKindAdjustmentData, Loader: LoaderFunc(func(ctx context.Context) ([]byte, error) {
			calls.Add(1)
			return []byte("first"), nil
		})},
		{Kind: ResourceKindAdjustmentData, Loader: LoaderFunc(func(ctx context.Context) ([]byte, error) {
			calls.Add(1)
			return []byte("second"), nil
		})},
	}}

	ch := collect(t, func(fn func([]byte)) { a.RequestAdjustedData(context.Background(), fn) })
	assert.Equal(t, []byte("first"), receive(t, ch))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRequestAdjustedData_NilCallback(t *testing.T) {
	var calls atomic.Int32
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		calls.Add(1)
		return []byte("x"), nil
	}))

	assert.NotPanics(t, func() { a.RequestAdjustedData(context.Background(), nil) })
}

func TestAdjustedData_Future(t *testing.T) {
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		return []byte("edits"), nil
	}))

	f := a.AdjustedData(context.Background())
	select {
	case <-f.Done():
	case <-time.After(waitTimeout):
		t.Fatal("future never completed")
	}

	data, ok := f.Result()
	assert.True(t, ok)
	assert.Equal(t, []byte("edits"), data)

	// Result is stable across reads.
	again, ok := f.Result()
	assert.True(t, ok)
	assert.Equal(t, data, again)
}

func TestAdjustedData_WaitGivesUp(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	a := adjustedAsset(LoaderFunc(func(ctx context.Context) ([]byte, error) {
		<-release
		return []byte("late"), nil
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok, err := a.AdjustedData(context.Background()).Wait(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestResourceData_PairedVideo(t *testing.T) {
	a := livePhoto()
	a.Resources[1].Loader = LoaderFunc(func(ctx context.Context) ([]byte, error) {
		return []byte("mov"), nil
	})

	r, ok := a.LivePhotoResource()
	require.True(t, ok)

	ch := collect(t, func(fn func([]byte)) { a.RequestResourceData(context.Background(), r, fn) })
	assert.Equal(t, []byte("mov"), receive(t, ch))
}

func TestResourceData_Future(t *testing.T) {
	a := livePhoto()
	a.Resources[0].Loader = LoaderFunc(func(ctx context.Context) ([]byte, error) {
		return []byte("heic"), nil
	})

	r, ok := a.PrimaryResource()
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()

	data, ok, err := a.ResourceData(context.Background(), r).Wait(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("heic"), data)
}
