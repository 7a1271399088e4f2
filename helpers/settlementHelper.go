package helpers

import (
	"sort"

	"weeat/models"
)

type ParticipantShare struct {
	Name           string  `json:"name"`
	Subtotal       float64 `json:"subtotal"`
	Delivery_share float64 `json:"delivery_share"`
	Total          float64 `json:"total"`
}

type Settlement struct {
	Per_participant []ParticipantShare `json:"per_participant"`
	Delivery_fee    float64            `json:"delivery_fee"`
	// Fee divided over the participants. With no participants yet this is
	// the whole fee, shown as the nominal share but billed to no one.
	Delivery_share float64 `json:"delivery_share"`
	Grand_total    float64 `json:"grand_total"`
}

// ComputeSettlement derives the per-participant cost breakdown. The
// delivery fee is split equally regardless of how much each participant
// ordered. Pure and safe to recompute at any time.
func ComputeSettlement(order models.GroupOrder) Settlement {
	participantCount := len(order.Participants)
	divisor := participantCount
	if divisor < 1 {
		divisor = 1
	}
	share := order.Delivery_fee / float64(divisor)

	settlement := Settlement{
		Per_participant: make([]ParticipantShare, 0, participantCount),
		Delivery_fee:    order.Delivery_fee,
		Delivery_share:  share,
	}

	for _, participant := range order.Participants {
		subtotal := 0.0
		for _, item := range participant.Items {
			subtotal += item.Dish.Price * float64(item.Quantity)
		}
		total := subtotal + share
		settlement.Per_participant = append(settlement.Per_participant, ParticipantShare{
			Name:           participant.Name,
			Subtotal:       subtotal,
			Delivery_share: share,
			Total:          total,
		})
		settlement.Grand_total += total
	}

	return settlement
}

type CollatedItem struct {
	Dish_id  string `json:"dish_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Collate merges every participant's items into one dish-level list for
// whoever phones the order in. Grouping is by dish id, not name, so two
// dishes that happen to share a name stay separate. Sorted by quantity
// descending; ties keep the order the dishes were first seen in.
func Collate(order models.GroupOrder) []CollatedItem {
	index := map[string]int{}
	collated := make([]CollatedItem, 0)

	for _, participant := range order.Participants {
		for _, item := range participant.Items {
			if pos, ok := index[item.Dish.Dish_id]; ok {
				collated[pos].Quantity += item.Quantity
				continue
			}
			index[item.Dish.Dish_id] = len(collated)
			collated = append(collated, CollatedItem{
				Dish_id:  item.Dish.Dish_id,
				Name:     item.Dish.Name,
				Quantity: item.Quantity,
			})
		}
	}

	sort.SliceStable(collated, func(i, j int) bool {
		return collated[i].Quantity > collated[j].Quantity
	})
	return collated
}
