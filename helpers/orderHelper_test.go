package helpers

import (
	"strings"
	"testing"

	"weeat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() models.GroupOrder {
	return models.GroupOrder{
		ID: "order-1",
		Restaurant: models.Restaurant{
			ID:   "rest-1",
			Name: "Kendo",
			Menu: []models.Dish{
				{Dish_id: "d-burger", Name: "Burger", Price: 6.00},
				{Dish_id: "d-fries", Name: "Fries", Price: 4.00, Has_spicy_option: true},
			},
			Delivery_fee: 5.00,
		},
		Participants: []models.Participant{},
		Status:       models.StatusActive,
		Order_code:   "AB12CD",
		Delivery_fee: 5.00,
	}
}

func TestAddItem_CreatesParticipant(t *testing.T) {
	order := testOrder()

	err := AddItem(&order, "Alice", "d-burger", 1, nil)
	require.NoError(t, err)

	require.Len(t, order.Participants, 1)
	assert.Equal(t, "Alice", order.Participants[0].Name)
	assert.NotEmpty(t, order.Participants[0].Participant_id)
	require.Len(t, order.Participants[0].Items, 1)
	assert.Equal(t, "d-burger", order.Participants[0].Items[0].Dish.Dish_id)
	assert.Equal(t, 6.00, order.Participants[0].Items[0].Dish.Price)
	assert.Equal(t, 1, order.Participants[0].Items[0].Quantity)
}

func TestAddItem_MergesSameDishCaseInsensitiveName(t *testing.T) {
	order := testOrder()

	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))
	require.NoError(t, AddItem(&order, "alice", "d-burger", 2, nil))

	// one participant, one item, summed quantity, first-seen casing kept
	require.Len(t, order.Participants, 1)
	assert.Equal(t, "Alice", order.Participants[0].Name)
	require.Len(t, order.Participants[0].Items, 1)
	assert.Equal(t, 3, order.Participants[0].Items[0].Quantity)
}

func TestAddItem_PreferenceIsNotPartOfMatchKey(t *testing.T) {
	order := testOrder()
	spicy := models.PreferenceSpicy

	require.NoError(t, AddItem(&order, "Bob", "d-fries", 1, &spicy))
	require.NoError(t, AddItem(&order, "Bob", "d-fries", 1, nil))

	require.Len(t, order.Participants[0].Items, 1)
	assert.Equal(t, 2, order.Participants[0].Items[0].Quantity)
	require.NotNil(t, order.Participants[0].Items[0].Preference)
	assert.Equal(t, models.PreferenceSpicy, *order.Participants[0].Items[0].Preference)
}

func TestAddItem_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		dishID   string
		quantity int
		wantErr  error
	}{
		{name: "finalized_order", status: models.StatusFinalized, dishID: "d-burger", quantity: 1, wantErr: ErrOrderFinalized},
		{name: "cancelled_order", status: models.StatusCancelled, dishID: "d-burger", quantity: 1, wantErr: ErrOrderCancelled},
		{name: "unknown_dish", status: models.StatusActive, dishID: "d-nope", quantity: 1, wantErr: ErrDishNotFound},
		{name: "zero_quantity", status: models.StatusActive, dishID: "d-burger", quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "negative_quantity", status: models.StatusActive, dishID: "d-burger", quantity: -2, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testOrder()
			order.Status = tt.status

			err := AddItem(&order, "Alice", tt.dishID, tt.quantity, nil)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, order.Participants, "a failed add must not touch the order")
		})
	}
}

func TestUpdateParticipantItems_DropsZeroQuantity(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 2, nil))
	require.NoError(t, AddItem(&order, "Alice", "d-fries", 1, nil))
	participantID := order.Participants[0].Participant_id

	burger := order.Participants[0].Items[0]
	fries := order.Participants[0].Items[1]
	burger.Quantity = 1
	fries.Quantity = 0

	err := UpdateParticipantItems(&order, participantID, []models.OrderItem{burger, fries})
	require.NoError(t, err)

	require.Len(t, order.Participants[0].Items, 1)
	assert.Equal(t, "d-burger", order.Participants[0].Items[0].Dish.Dish_id)
	assert.Equal(t, 1, order.Participants[0].Items[0].Quantity)
}

func TestUpdateParticipantItems_AllowsEmptyList(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 2, nil))
	participantID := order.Participants[0].Participant_id

	require.NoError(t, UpdateParticipantItems(&order, participantID, []models.OrderItem{}))

	require.Len(t, order.Participants, 1, "a participant with zero items stays on the order")
	assert.Empty(t, order.Participants[0].Items)
}

func TestUpdateParticipantItems_UnknownParticipant(t *testing.T) {
	order := testOrder()

	err := UpdateParticipantItems(&order, "nope", []models.OrderItem{})

	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestUpdateParticipantItems_FinalizedOrder(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 2, nil))
	participantID := order.Participants[0].Participant_id
	require.NoError(t, Finalize(&order))

	err := UpdateParticipantItems(&order, participantID, []models.OrderItem{})

	assert.ErrorIs(t, err, ErrOrderFinalized)
	assert.Len(t, order.Participants[0].Items, 1)
}

func TestRemoveParticipant(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))
	require.NoError(t, AddItem(&order, "Bob", "d-fries", 1, nil))
	aliceID := order.Participants[0].Participant_id

	require.NoError(t, RemoveParticipant(&order, aliceID))
	require.Len(t, order.Participants, 1)
	assert.Equal(t, "Bob", order.Participants[0].Name)

	// removing an absent id is a no-op, not an error
	require.NoError(t, RemoveParticipant(&order, aliceID))
	assert.Len(t, order.Participants, 1)
}

func TestFinalize(t *testing.T) {
	order := testOrder()

	require.NoError(t, Finalize(&order))
	assert.Equal(t, models.StatusFinalized, order.Status)

	// idempotent
	require.NoError(t, Finalize(&order))
	assert.Equal(t, models.StatusFinalized, order.Status)
}

func TestFinalize_CancelledOrder(t *testing.T) {
	order := testOrder()
	order.Status = models.StatusCancelled

	err := Finalize(&order)

	assert.ErrorIs(t, err, ErrOrderCancelled)
	assert.Equal(t, models.StatusCancelled, order.Status)
}

func TestNewOrderCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewOrderCode()
		require.Len(t, code, OrderCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(orderCodeAlphabet, r), "unexpected character %q in code %q", r, code)
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}
