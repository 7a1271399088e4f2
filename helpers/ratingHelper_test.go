package helpers

import (
	"testing"

	"weeat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRating_FirstScore(t *testing.T) {
	rating, count := ApplyRating(nil, nil, 4)

	require.NotNil(t, rating)
	require.NotNil(t, count)
	assert.InDelta(t, 4.0, *rating, 1e-9)
	assert.Equal(t, 1, *count)
}

func TestApplyRating_FoldsIntoRunningAverage(t *testing.T) {
	prev := 4.0
	prevCount := 2

	rating, count := ApplyRating(&prev, &prevCount, 5)

	assert.InDelta(t, (4.0*2+5)/3, *rating, 1e-9)
	assert.Equal(t, 3, *count)
}

func TestApplyRating_StaysWithinBounds(t *testing.T) {
	var rating *float64
	var count *int

	for _, score := range []int{1, 5, 3, 5, 1, 2, 4} {
		rating, count = ApplyRating(rating, count, score)
		assert.GreaterOrEqual(t, *rating, 1.0)
		assert.LessOrEqual(t, *rating, 5.0)
	}
	assert.Equal(t, 7, *count)
}

func TestRecordRating(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))

	err := RecordRating(&order, models.Rating{
		User_id:           "alice",
		Restaurant_rating: 5,
		Dish_ratings:      map[string]int{"d-burger": 4},
	})

	require.NoError(t, err)
	require.Contains(t, order.Ratings, "alice")
	assert.Equal(t, 5, order.Ratings["alice"].Restaurant_rating)
}

func TestRecordRating_RejectsDuplicateUser(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))

	first := models.Rating{User_id: "alice", Restaurant_rating: 5}
	require.NoError(t, RecordRating(&order, first))

	err := RecordRating(&order, models.Rating{User_id: "alice", Restaurant_rating: 1})

	assert.ErrorIs(t, err, ErrAlreadyRated)
	// the rejected attempt must leave the recorded rating untouched
	require.Len(t, order.Ratings, 1)
	assert.Equal(t, first, order.Ratings["alice"])
}

func TestRecordRating_RejectsDishNobodyOrdered(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))

	err := RecordRating(&order, models.Rating{
		User_id:           "alice",
		Restaurant_rating: 5,
		Dish_ratings:      map[string]int{"d-fries": 4},
	})

	assert.ErrorIs(t, err, ErrDishNotInOrder)
	assert.Empty(t, order.Ratings)
}
