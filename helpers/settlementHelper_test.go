package helpers

import (
	"testing"

	"weeat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a typical small order: delivery fee 5.00, Alice 1x Burger (6.00),
// Bob 2x Fries (4.00 each)
func twoPersonOrder(t *testing.T) models.GroupOrder {
	t.Helper()
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))
	require.NoError(t, AddItem(&order, "Bob", "d-fries", 2, nil))
	return order
}

func TestComputeSettlement_TwoPersonOrder(t *testing.T) {
	settlement := ComputeSettlement(twoPersonOrder(t))

	require.Len(t, settlement.Per_participant, 2)

	alice := settlement.Per_participant[0]
	assert.Equal(t, "Alice", alice.Name)
	assert.InDelta(t, 6.00, alice.Subtotal, 1e-9)
	assert.InDelta(t, 2.50, alice.Delivery_share, 1e-9)
	assert.InDelta(t, 8.50, alice.Total, 1e-9)

	bob := settlement.Per_participant[1]
	assert.Equal(t, "Bob", bob.Name)
	assert.InDelta(t, 8.00, bob.Subtotal, 1e-9)
	assert.InDelta(t, 2.50, bob.Delivery_share, 1e-9)
	assert.InDelta(t, 10.50, bob.Total, 1e-9)

	assert.InDelta(t, 19.00, settlement.Grand_total, 1e-9)
}

// grand total must equal the sum of subtotals plus the delivery fee to the
// cent, and the fee shares must sum back to the fee, even when the fee
// does not divide evenly.
func TestComputeSettlement_Identity(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-burger", 1, nil))
	require.NoError(t, AddItem(&order, "Bob", "d-fries", 2, nil))
	require.NoError(t, AddItem(&order, "Carol", "d-fries", 1, nil))

	settlement := ComputeSettlement(order)

	sumSubtotals := 0.0
	sumTotals := 0.0
	sumShares := 0.0
	for _, p := range settlement.Per_participant {
		sumSubtotals += p.Subtotal
		sumTotals += p.Total
		sumShares += p.Delivery_share
	}

	assert.InDelta(t, sumSubtotals+order.Delivery_fee, sumTotals, 0.005)
	assert.InDelta(t, order.Delivery_fee, sumShares, 0.005)
	assert.InDelta(t, sumTotals, settlement.Grand_total, 0.005)
}

func TestComputeSettlement_EmptyOrder(t *testing.T) {
	settlement := ComputeSettlement(testOrder())

	assert.Empty(t, settlement.Per_participant)
	assert.NotNil(t, settlement.Per_participant)
	// with nobody on the order the whole fee is shown as the nominal share
	assert.InDelta(t, 5.00, settlement.Delivery_share, 1e-9)
	assert.InDelta(t, 0.0, settlement.Grand_total, 1e-9)
}

func TestComputeSettlement_AddItemRaisesGrandTotalByPriceTimesQuantity(t *testing.T) {
	order := twoPersonOrder(t)
	before := ComputeSettlement(order).Grand_total

	require.NoError(t, AddItem(&order, "Carol", "d-burger", 3, nil))
	after := ComputeSettlement(order).Grand_total

	// the delivery shares redistribute, but their sum stays at the fee, so
	// the grand total moves by exactly price x quantity
	assert.InDelta(t, 3*6.00, after-before, 0.005)
}

func TestCollate_SortsByQuantityDesc(t *testing.T) {
	collated := Collate(twoPersonOrder(t))

	require.Len(t, collated, 2)
	assert.Equal(t, "Fries", collated[0].Name)
	assert.Equal(t, 2, collated[0].Quantity)
	assert.Equal(t, "Burger", collated[1].Name)
	assert.Equal(t, 1, collated[1].Quantity)
}

func TestCollate_SumsAcrossParticipants(t *testing.T) {
	order := twoPersonOrder(t)
	require.NoError(t, AddItem(&order, "Carol", "d-burger", 2, nil))

	collated := Collate(order)

	quantities := map[string]int{}
	for _, item := range collated {
		quantities[item.Dish_id] = item.Quantity
	}
	assert.Equal(t, map[string]int{"d-burger": 3, "d-fries": 2}, quantities)
}

func TestCollate_TiesKeepFirstSeenOrder(t *testing.T) {
	order := testOrder()
	require.NoError(t, AddItem(&order, "Alice", "d-fries", 2, nil))
	require.NoError(t, AddItem(&order, "Bob", "d-burger", 2, nil))

	collated := Collate(order)

	require.Len(t, collated, 2)
	assert.Equal(t, "d-fries", collated[0].Dish_id)
	assert.Equal(t, "d-burger", collated[1].Dish_id)
}

func TestCollate_EmptyOrder(t *testing.T) {
	collated := Collate(testOrder())

	assert.NotNil(t, collated)
	assert.Empty(t, collated)
}
