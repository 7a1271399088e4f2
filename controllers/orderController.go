package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"time"

	"weeat/database"
	"weeat/helpers"
	"weeat/middleware"
	"weeat/models"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type OrderController struct {
	store database.Store
}

func NewOrderController(store database.Store) *OrderController {
	return &OrderController{store: store}
}

// loadOrder fetches an order from the active collection, falling back to
// history so settlement, collation and ratings keep working after the
// order has been archived. The collection it was found in is returned so
// the caller can write it back to the right place.
func loadOrder(ctx context.Context, store database.Store, orderID string) (models.GroupOrder, string, error) {
	var order models.GroupOrder
	err := store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
	if err == nil {
		return order, database.CollectionGroupOrders, nil
	}
	if !errors.Is(err, database.ErrNoDocument) {
		return order, "", err
	}
	err = store.Get(ctx, database.CollectionHistory, orderID, &order)
	return order, database.CollectionHistory, err
}

func (ctrl *OrderController) orderCodeInUse(ctx context.Context, code string) (bool, error) {
	for _, collection := range []string{database.CollectionGroupOrders, database.CollectionHistory} {
		var orders []models.GroupOrder
		if err := ctrl.store.List(ctx, collection, &orders); err != nil {
			return false, err
		}
		for _, order := range orders {
			if order.Order_code == code {
				return true, nil
			}
		}
	}
	return false, nil
}

func (ctrl *OrderController) newUniqueOrderCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code := helpers.NewOrderCode()
		inUse, err := ctrl.orderCodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique order code")
}

type createOrderRequest struct {
	Restaurant_id string `json:"restaurant_id" validate:"required"`
}

func (ctrl *OrderController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req createOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, req.Restaurant_id, &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		code, err := ctrl.newUniqueOrderCode(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}

		order := models.GroupOrder{
			ID:           ctrl.store.Push(database.CollectionGroupOrders),
			Restaurant:   restaurant,
			Participants: []models.Participant{},
			Created_at:   time.Now().UTC(),
			Status:       models.StatusActive,
			Order_code:   code,
			Delivery_fee: restaurant.Delivery_fee,
		}

		if err := ctrl.store.Set(ctx, database.CollectionGroupOrders, order.ID, order); err != nil {
			log.Println("order insert failed:", err)
			middleware.RecordOrderOperation("create", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		middleware.RecordOrderOperation("create", true)
		notifyOrderEvent("orderCreated", order)
		c.JSON(http.StatusCreated, order)
	}
}

func (ctrl *OrderController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var orders []models.GroupOrder
		if err := ctrl.store.List(ctx, database.CollectionGroupOrders, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing orders"})
			return
		}
		sortOrdersByCreatedAtDesc(orders)
		if orders == nil {
			orders = []models.GroupOrder{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (ctrl *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		order, _, err := loadOrder(ctx, ctrl.store, c.Param("order_id"))
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type addItemRequest struct {
	User_name  string  `json:"user_name" validate:"required,min=1,max=100"`
	Dish_id    string  `json:"dish_id" validate:"required"`
	Quantity   int     `json:"quantity" validate:"min=1"`
	Preference *string `json:"preference" validate:"omitempty,eq=spicy|eq=regular"`
}

func (ctrl *OrderController) AddItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req addItemRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := helpers.AddItem(&order, req.User_name, req.Dish_id, req.Quantity, req.Preference); err != nil {
			middleware.RecordOrderOperation("add_item", false)
			respondMutationError(c, err)
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionGroupOrders, orderID, order); err != nil {
			middleware.RecordOrderOperation("add_item", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		middleware.RecordOrderOperation("add_item", true)
		notifyOrderEvent("orderUpdated", order)

		dishName := req.Dish_id
		for _, dish := range order.Restaurant.Menu {
			if dish.Dish_id == req.Dish_id {
				dishName = dish.Name
				break
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%dx %s added for %s", req.Quantity, dishName, req.User_name),
			"order":   order,
		})
	}
}

// An empty items list is a legal update: it clears the participant's
// order without removing them.
type updateItemsRequest struct {
	Items []models.OrderItem `json:"items"`
}

func (ctrl *OrderController) UpdateParticipantItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req updateItemsRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := helpers.UpdateParticipantItems(&order, c.Param("participant_id"), req.Items); err != nil {
			middleware.RecordOrderOperation("update_items", false)
			respondMutationError(c, err)
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionGroupOrders, orderID, order); err != nil {
			middleware.RecordOrderOperation("update_items", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		middleware.RecordOrderOperation("update_items", true)
		notifyOrderEvent("orderUpdated", order)
		c.JSON(http.StatusOK, order)
	}
}

func (ctrl *OrderController) RemoveParticipant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := helpers.RemoveParticipant(&order, c.Param("participant_id")); err != nil {
			middleware.RecordOrderOperation("remove_participant", false)
			respondMutationError(c, err)
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionGroupOrders, orderID, order); err != nil {
			middleware.RecordOrderOperation("remove_participant", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		middleware.RecordOrderOperation("remove_participant", true)
		notifyOrderEvent("orderUpdated", order)
		c.JSON(http.StatusOK, order)
	}
}

func (ctrl *OrderController) FinalizeOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := helpers.Finalize(&order); err != nil {
			middleware.RecordOrderOperation("finalize", false)
			respondMutationError(c, err)
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionGroupOrders, orderID, order); err != nil {
			middleware.RecordOrderOperation("finalize", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order update failed"})
			return
		}
		middleware.RecordOrderOperation("finalize", true)
		notifyOrderEvent("orderFinalized", order)
		c.JSON(http.StatusOK, order)
	}
}

// ArchiveOrder moves the order into the history collection under the same
// id, whatever its status. The write into history happens before the
// delete from the active collection, so a failure in between leaves the
// order readable in both places rather than lost.
func (ctrl *OrderController) ArchiveOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionHistory, orderID, order); err != nil {
			middleware.RecordOrderOperation("archive", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not archived"})
			return
		}
		if err := ctrl.store.Remove(ctx, database.CollectionGroupOrders, orderID); err != nil {
			middleware.RecordOrderOperation("archive", false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not archived"})
			return
		}
		middleware.RecordOrderOperation("archive", true)
		notifyOrderEvent("orderArchived", order)
		c.JSON(http.StatusOK, order)
	}
}

func (ctrl *OrderController) GetSettlement() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		order, _, err := loadOrder(ctx, ctrl.store, c.Param("order_id"))
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		c.JSON(http.StatusOK, helpers.ComputeSettlement(order))
	}
}

func (ctrl *OrderController) GetCollatedList() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		order, _, err := loadOrder(ctx, ctrl.store, c.Param("order_id"))
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}
		c.JSON(http.StatusOK, helpers.Collate(order))
	}
}

// GetOrderQRCode renders the shareable order link as a PNG so it can be
// dropped straight into a group chat.
func (ctrl *OrderController) GetOrderQRCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionGroupOrders, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		baseURL := os.Getenv("PUBLIC_BASE_URL")
		if baseURL == "" {
			baseURL = "http://localhost:8000"
		}
		png, err := qrcode.Encode(fmt.Sprintf("%s/orders/%s", baseURL, orderID), qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "qr code generation failed"})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}

func sortOrdersByCreatedAtDesc(orders []models.GroupOrder) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Created_at.After(orders[j].Created_at)
	})
}

// respondMutationError translates the helper sentinels into HTTP codes.
func respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, helpers.ErrOrderFinalized), errors.Is(err, helpers.ErrOrderCancelled), errors.Is(err, helpers.ErrAlreadyRated):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, helpers.ErrDishNotFound), errors.Is(err, helpers.ErrParticipantNotFound), errors.Is(err, helpers.ErrDishNotInOrder):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, helpers.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
