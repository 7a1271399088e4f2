package helpers

import (
	"errors"
	"math/rand"
	"strings"

	"weeat/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrOrderFinalized      = errors.New("order is finalized and can no longer be modified")
	ErrOrderCancelled      = errors.New("order has been cancelled")
	ErrDishNotFound        = errors.New("dish is not on the restaurant menu")
	ErrDishNotInOrder      = errors.New("dish was not ordered by anyone in this order")
	ErrParticipantNotFound = errors.New("participant not found in this order")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrAlreadyRated        = errors.New("this user has already rated the order")
)

// Digits/letters that survive being read out loud over the phone: no 0/O,
// no 1/I.
const orderCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const OrderCodeLength = 6

// NewOrderCode returns a 6-character share code. Uniqueness across the
// active and history collections is the caller's job (generate, scan,
// retry on collision).
func NewOrderCode() string {
	code := make([]byte, OrderCodeLength)
	for i := range code {
		code[i] = orderCodeAlphabet[rand.Intn(len(orderCodeAlphabet))]
	}
	return string(code)
}

func NewParticipantID() string {
	return primitive.NewObjectID().Hex()
}

func statusAllowsMutation(order *models.GroupOrder) error {
	switch order.Status {
	case models.StatusFinalized:
		return ErrOrderFinalized
	case models.StatusCancelled:
		return ErrOrderCancelled
	}
	return nil
}

// AddItem puts quantity units of a menu dish on the order under userName.
// The participant match is case-insensitive; a missing participant is
// created on the fly, keeping the casing of this first occurrence. If the
// participant already has the dish (matched by dish id, preference is not
// part of the key) the quantities are summed into the existing line.
//
// The order is only modified when nil is returned.
func AddItem(order *models.GroupOrder, userName string, dishID string, quantity int, preference *string) error {
	if err := statusAllowsMutation(order); err != nil {
		return err
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	var dish *models.Dish
	for i := range order.Restaurant.Menu {
		if order.Restaurant.Menu[i].Dish_id == dishID {
			dish = &order.Restaurant.Menu[i]
			break
		}
	}
	if dish == nil {
		return ErrDishNotFound
	}

	userName = strings.TrimSpace(userName)

	var participant *models.Participant
	for i := range order.Participants {
		if strings.EqualFold(order.Participants[i].Name, userName) {
			participant = &order.Participants[i]
			break
		}
	}
	if participant == nil {
		order.Participants = append(order.Participants, models.Participant{
			Participant_id: NewParticipantID(),
			Name:           userName,
			Items:          []models.OrderItem{},
		})
		participant = &order.Participants[len(order.Participants)-1]
	}

	for i := range participant.Items {
		if participant.Items[i].Dish.Dish_id == dishID {
			participant.Items[i].Quantity += quantity
			return nil
		}
	}

	participant.Items = append(participant.Items, models.OrderItem{
		Dish:       *dish,
		Quantity:   quantity,
		Preference: preference,
	})
	return nil
}

// UpdateParticipantItems replaces the participant's item list wholesale.
// Clients are expected to have filtered zero-quantity lines already, but
// the list is re-validated here: anything at quantity <= 0 is dropped, an
// item must never be stored at quantity 0.
func UpdateParticipantItems(order *models.GroupOrder, participantID string, items []models.OrderItem) error {
	if err := statusAllowsMutation(order); err != nil {
		return err
	}

	for i := range order.Participants {
		if order.Participants[i].Participant_id != participantID {
			continue
		}
		kept := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Quantity >= 1 {
				kept = append(kept, item)
			}
		}
		order.Participants[i].Items = kept
		return nil
	}
	return ErrParticipantNotFound
}

// RemoveParticipant drops the participant and everything they ordered.
// Removing an id that is not on the order is a no-op, not an error.
func RemoveParticipant(order *models.GroupOrder, participantID string) error {
	if err := statusAllowsMutation(order); err != nil {
		return err
	}

	for i := range order.Participants {
		if order.Participants[i].Participant_id == participantID {
			order.Participants = append(order.Participants[:i], order.Participants[i+1:]...)
			return nil
		}
	}
	return nil
}

// Finalize closes the order for further item mutation. Finalizing an
// already-finalized order is an idempotent no-op.
func Finalize(order *models.GroupOrder) error {
	if order.Status == models.StatusCancelled {
		return ErrOrderCancelled
	}
	order.Status = models.StatusFinalized
	return nil
}
