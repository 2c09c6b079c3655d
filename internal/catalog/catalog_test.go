package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

func TestUpdateOrCreate_InsertsNew(t *testing.T) {
	c := New()
	err := c.UpdateOrCreate(context.Background(), types.Record{Path: "a.flac"})
	require.NoError(t, err)
	require.Len(t, c.Records(), 1)
}

func TestUpdateOrCreate_OverwritesExisting(t *testing.T) {
	c := New()
	ctx := context.Background()
	require.NoError(t, c.UpdateOrCreate(ctx, types.Record{Path: "a.flac", Tags: types.NewTagMap()}))

	updated := types.NewTagMap()
	updated.SetString("TITLE", "Updated")
	require.NoError(t, c.UpdateOrCreate(ctx, types.Record{Path: "a.flac", Tags: updated}))

	records := c.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Updated", records[0].Tags.GetString("TITLE"))
}

func TestUpdateOrCreate_CanceledContext(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.UpdateOrCreate(ctx, types.Record{Path: "a.flac"})
	require.Error(t, err)
}
