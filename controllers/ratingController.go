package controllers

import (
	"context"
	"errors"
	"net/http"

	"weeat/database"
	"weeat/helpers"
	"weeat/models"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	store database.Store
}

func NewRatingController(store database.Store) *RatingController {
	return &RatingController{store: store}
}

// SubmitRating records one user's rating for an order and folds the
// scores into the restaurant and dish running averages. Works for active
// and archived orders alike, since people usually rate after the meal.
func (ctrl *RatingController) SubmitRating() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var rating models.Rating
		if err := c.BindJSON(&rating); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&rating); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		for _, score := range rating.Dish_ratings {
			if score < 1 || score > 5 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dish ratings must be between 1 and 5"})
				return
			}
		}

		order, collection, err := loadOrder(ctx, ctrl.store, c.Param("order_id"))
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the order"})
			return
		}

		if err := helpers.RecordRating(&order, rating); err != nil {
			respondMutationError(c, err)
			return
		}

		if err := ctrl.store.Set(ctx, collection, order.ID, order); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "rating was not saved"})
			return
		}

		// Fold into the live restaurant document. The restaurant may have
		// been deleted since the order was placed; the order rating still
		// stands in that case.
		var restaurant models.Restaurant
		err = ctrl.store.Get(ctx, database.CollectionRestaurants, order.Restaurant.ID, &restaurant)
		if err == nil {
			restaurant.Rating, restaurant.Rating_count = helpers.ApplyRating(restaurant.Rating, restaurant.Rating_count, rating.Restaurant_rating)
			for i := range restaurant.Menu {
				if score, ok := rating.Dish_ratings[restaurant.Menu[i].Dish_id]; ok {
					restaurant.Menu[i].Rating, restaurant.Menu[i].Rating_count = helpers.ApplyRating(restaurant.Menu[i].Rating, restaurant.Menu[i].Rating_count, score)
				}
			}
			if err := ctrl.store.Set(ctx, database.CollectionRestaurants, restaurant.ID, restaurant); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "rating was not saved"})
				return
			}
		} else if !errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "rating recorded", "order": order})
	}
}
