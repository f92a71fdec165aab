package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/graha/internal/core/domain"
)

func TestReportStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()

	report := &domain.Report{ID: "r1", Label: "first", Warnings: []string{"w"}}
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Label)
	assert.Equal(t, []string{"w"}, got.Warnings)

	require.NoError(t, store.Delete(ctx, "r1"))
	_, err = store.Get(ctx, "r1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(store.Delete(ctx, "r1"), domain.ErrNotFound))
}

func TestReportStore_SaveRequiresID(t *testing.T) {
	store := NewReportStore()

	err := store.Save(context.Background(), &domain.Report{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestReportStore_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &domain.Report{ID: "old", GeneratedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "new", GeneratedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Report{ID: "mid", GeneratedAt: base.Add(time.Minute)}))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
