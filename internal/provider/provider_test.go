package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethanbaker/calldash/pkg/calls"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newTestDemo(clock *fakeClock, failNumbers ...string) *Demo {
	return NewDemo(&Options{
		CompleteAfter: time.Minute,
		FailNumbers:   failNumbers,
		Now:           clock.Now,
	})
}

func TestDemoLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	demo := newTestDemo(clock, "+15550009999")

	res, err := demo.PlaceCall(ctx, &calls.PlaceCallRequest{ID: "call-ok", PhoneNumber: "+15551234567"})
	require.NoError(t, err)
	assert.Equal(t, calls.StatusInProgress, res.InitialStatus)

	_, err = demo.PlaceCall(ctx, &calls.PlaceCallRequest{ID: "call-bad", PhoneNumber: "+15550009999"})
	require.NoError(t, err)

	status, err := demo.CheckStatus(ctx, "call-ok")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusInProgress, status)

	_, ok, err := demo.FetchTranscript(ctx, "call-ok")
	require.NoError(t, err)
	assert.False(t, ok)

	clock.now = clock.now.Add(time.Minute)

	status, err = demo.CheckStatus(ctx, "call-ok")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusCompleted, status)

	status, err = demo.CheckStatus(ctx, "call-bad")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusFailed, status)

	text, ok, err := demo.FetchTranscript(ctx, "call-ok")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "This is a transcript for call call-ok."))
	assert.Contains(t, text, "Agent:")
	assert.Contains(t, text, "Customer:")

	again, _, err := demo.FetchTranscript(ctx, "call-ok")
	require.NoError(t, err)
	assert.Equal(t, text, again)

	_, ok, err = demo.FetchTranscript(ctx, "call-bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDemoRegister(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)}
	demo := newTestDemo(clock)

	demo.Register(&calls.Call{
		ID:          "call-pending",
		PhoneNumber: "+15551234567",
		Status:      calls.StatusInProgress,
		Timestamp:   clock.now.Add(-30 * time.Second),
	})
	demo.Register(&calls.Call{
		ID:          "call-failed",
		PhoneNumber: "+15551234567",
		Status:      calls.StatusFailed,
		Timestamp:   clock.now.Add(-time.Hour),
	})
	demo.Register(nil)

	status, err := demo.CheckStatus(ctx, "call-pending")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusInProgress, status)

	clock.now = clock.now.Add(30 * time.Second)

	status, err = demo.CheckStatus(ctx, "call-pending")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusCompleted, status)

	text, ok, err := demo.FetchTranscript(ctx, "call-pending")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "This is a transcript for call call-pending."))

	// A stored terminal status wins over the clock
	status, err = demo.CheckStatus(ctx, "call-failed")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusFailed, status)

	_, ok, err = demo.FetchTranscript(ctx, "call-failed")
	require.NoError(t, err)
	assert.False(t, ok)

	// Registering a known id does not reset it
	demo.Register(&calls.Call{ID: "call-pending", PhoneNumber: "+15551234567", Timestamp: clock.now})
	status, err = demo.CheckStatus(ctx, "call-pending")
	require.NoError(t, err)
	assert.Equal(t, calls.StatusCompleted, status)
}

func TestDemoUnknownCall(t *testing.T) {
	ctx := context.Background()
	demo := NewDemo(nil)

	_, err := demo.CheckStatus(ctx, "call-missing")
	assert.Error(t, err)

	_, ok, err := demo.FetchTranscript(ctx, "call-missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDemoPlaceCallValidation(t *testing.T) {
	ctx := context.Background()
	demo := NewDemo(nil)

	_, err := demo.PlaceCall(ctx, nil)
	assert.Error(t, err)

	_, err = demo.PlaceCall(ctx, &calls.PlaceCallRequest{ID: "call-1"})
	assert.Error(t, err)

	_, err = demo.PlaceCall(ctx, &calls.PlaceCallRequest{ID: "call-1", PhoneNumber: "+15551234567"})
	require.NoError(t, err)

	_, err = demo.PlaceCall(ctx, &calls.PlaceCallRequest{ID: "call-1", PhoneNumber: "+15551234567"})
	assert.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := LoadOptions("")
		require.NoError(t, err)
		assert.Equal(t, DefaultCompleteAfter, opts.CompleteAfter)
	})

	t.Run("from yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "provider.yaml")
		contents := "complete_after: 5s\nfail_numbers:\n  - \"+15550009999\"\n"
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

		opts, err := LoadOptions(path)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, opts.CompleteAfter)
		assert.Equal(t, []string{"+15550009999"}, opts.FailNumbers)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("negative duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "provider.yaml")
		require.NoError(t, os.WriteFile(path, []byte("complete_after: -1s\n"), 0o644))

		_, err := LoadOptions(path)
		assert.Error(t, err)
	})
}
