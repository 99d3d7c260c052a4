package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingEventRepository_MarkProcessed(t *testing.T) {
	repo := NewBillingEventRepository(setupTestDB(t))
	ctx := context.Background()

	seen, err := repo.IsProcessed(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, seen)

	first, err := repo.MarkProcessed(ctx, "evt_1", "customer.subscription.updated")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := repo.MarkProcessed(ctx, "evt_1", "customer.subscription.updated")
	require.NoError(t, err)
	assert.False(t, again)

	seen, err = repo.IsProcessed(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, seen)
}
