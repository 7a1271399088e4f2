package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"weeat/database"
	"weeat/helpers"
	"weeat/models"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	store database.Store
}

func NewHistoryController(store database.Store) *HistoryController {
	return &HistoryController{store: store}
}

func (ctrl *HistoryController) GetHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var orders []models.GroupOrder
		if err := ctrl.store.List(ctx, database.CollectionHistory, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing past orders"})
			return
		}
		sortOrdersByCreatedAtDesc(orders)
		if orders == nil {
			orders = []models.GroupOrder{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// FindOrderByCode looks a past order up by its 6-character share code. The
// history collection is scanned linearly; at this scale that is fine.
func (ctrl *HistoryController) FindOrderByCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		code := strings.ToUpper(strings.TrimSpace(c.Query("code")))
		if len(code) != helpers.OrderCodeLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order code must be 6 characters"})
			return
		}

		var orders []models.GroupOrder
		if err := ctrl.store.List(ctx, database.CollectionHistory, &orders); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while searching past orders"})
			return
		}
		for _, order := range orders {
			if order.Order_code == code {
				c.JSON(http.StatusOK, order)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "no past order found with that code"})
	}
}

// DeleteOrder permanently removes an archived order. There is no undo.
func (ctrl *HistoryController) DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		orderID := c.Param("order_id")
		var order models.GroupOrder
		err := ctrl.store.Get(ctx, database.CollectionHistory, orderID, &order)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := ctrl.store.Remove(ctx, database.CollectionHistory, orderID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order delete failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted from history"})
	}
}
