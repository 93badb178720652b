package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosafe/impact-cli/internal/config"
)

func TestProcessBatchCancelledContext(t *testing.T) {
	cfg = &config.Config{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	events := []event{
		{
			Name:     "flood-2024",
			Dir:      dir,
			Hazard:   filepath.Join(dir, "hazard.shp"),
			Exposure: filepath.Join(dir, "exposure.shp"),
		},
	}

	err := processBatch(ctx, events, "categorised", 0, 2, testRunConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessBatchContinuesPastFailures(t *testing.T) {
	cfg = &config.Config{}

	// Both events point at layers that do not exist; failures are logged
	// and the batch still completes.
	dir := t.TempDir()
	var events []event
	for _, name := range []string{"broken-1", "broken-2"} {
		events = append(events, event{
			Name:     name,
			Dir:      dir,
			Hazard:   filepath.Join(dir, name, "hazard.shp"),
			Exposure: filepath.Join(dir, name, "exposure.shp"),
		})
	}

	err := processBatch(context.Background(), events, "categorised", 0, 2, testRunConfig())
	assert.NoError(t, err)
}

func TestProcessBatchNoEvents(t *testing.T) {
	cfg = &config.Config{}
	assert.NoError(t, processBatch(context.Background(), nil, "categorised", 0, 2, testRunConfig()))
}
