package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorapp/internal/models"
	"vendorapp/internal/repositories"
)

func TestMockOrderRepository_PagesAndFilters(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		repo.Add("v-1", models.Order{OrderID: fmt.Sprintf("ORD-%d", i), CreatedAt: base.AddDate(0, 0, i)})
	}
	ctx := context.Background()

	page, err := repo.ListByVendor(ctx, "v-1", models.OrderQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, "ORD-10", page[0].OrderID)

	page, err = repo.ListByVendor(ctx, "v-1", models.OrderQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page)

	rng := &models.DateRange{Start: base, End: base.AddDate(0, 0, 1)}
	page, err = repo.ListByVendor(ctx, "v-1", models.OrderQuery{Page: 1, Limit: 10, Range: rng})
	require.NoError(t, err)
	assert.Len(t, page, 2)

	list, _, _ := repo.Calls()
	assert.Equal(t, 3, list)
}
