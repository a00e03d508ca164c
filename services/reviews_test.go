package services

import (
	"testing"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewAdd_OwnerCannotReviewOwnRestaurant(t *testing.T) {
	env := newTestEnv(t)
	m := env.seed(t)

	_, err := env.reviews.Add(env.ctx, m.owner, 1, 5, "best in town")
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Zero(t, env.count(t, &models.Review{}))

	// Another owner may review it.
	_, err = env.reviews.Add(env.ctx, m.owner2, 1, 4, "")
	assert.NoError(t, err)
}

func TestReviewAdd_RatingBounds(t *testing.T) {
	env := newTestEnv(t)
	m := env.seed(t)

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviews.Add(env.ctx, m.customer, 1, rating, "")
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "rating %d", rating)
	}
	_, err := env.reviews.Add(env.ctx, m.customer, 404, 3, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Zero(t, env.count(t, &models.Review{}))
}

func TestReviewAdd_AverageMatchesMean(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	ratings := []int{5, 3, 4, 1, 2, 5}
	var runningMean float64
	for i, r := range ratings {
		reviewer := env.user(t, uint(100+i), models.RoleCustomer)
		_, err := env.reviews.Add(env.ctx, reviewer, 1, r, "")
		require.NoError(t, err)
		runningMean = (runningMean*float64(i) + float64(r)) / float64(i+1)
	}

	rest, err := env.restaurants.Get(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(len(ratings)), rest.ReviewCount)
	assert.InDelta(t, 20.0/6.0, rest.Rating, 1e-9)
	assert.InDelta(t, runningMean, rest.Rating, 1e-9)
}

func TestReviewDelete_RestoresAverage(t *testing.T) {
	env := newTestEnv(t)
	m := env.seed(t)

	first, err := env.reviews.Add(env.ctx, m.customer, 1, 5, "")
	require.NoError(t, err)
	second, err := env.reviews.Add(env.ctx, m.customer2, 1, 2, "")
	require.NoError(t, err)

	err = env.reviews.Delete(env.ctx, m.customer, second.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	require.NoError(t, env.reviews.Delete(env.ctx, m.customer2, second.ID))
	rest, err := env.restaurants.Get(env.ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rest.ReviewCount)
	assert.InDelta(t, 5.0, rest.Rating, 1e-9)

	require.NoError(t, env.reviews.Delete(env.ctx, m.admin, first.ID))
	rest, err = env.restaurants.Get(env.ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, rest.ReviewCount)
	assert.Zero(t, rest.Rating)
}

func TestReviewList_Paged(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)
	for i := 0; i < 5; i++ {
		reviewer := env.user(t, uint(200+i), models.RoleCustomer)
		_, err := env.reviews.Add(env.ctx, reviewer, 1, 4, "ok")
		require.NoError(t, err)
	}

	page, err := env.reviews.List(env.ctx, 1, repository.Page{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Reviews, 1)
	require.NotNil(t, page.Reviews[0].User)
	assert.Equal(t, uint(200), page.Reviews[0].User.ID)

	_, err = env.reviews.List(env.ctx, 404, repository.Page{})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
