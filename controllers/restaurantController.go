package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"weeat/database"
	"weeat/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
)

var validate = validator.New()

const requestTimeout = 10 * time.Second

type RestaurantController struct {
	store database.Store
}

func NewRestaurantController(store database.Store) *RestaurantController {
	return &RestaurantController{store: store}
}

func (ctrl *RestaurantController) GetRestaurants() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var restaurants []models.Restaurant
		if err := ctrl.store.List(ctx, database.CollectionRestaurants, &restaurants); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing restaurants"})
			return
		}
		if restaurants == nil {
			restaurants = []models.Restaurant{}
		}
		c.JSON(http.StatusOK, restaurants)
	}
}

func (ctrl *RestaurantController) GetRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, c.Param("restaurant_id"), &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func (ctrl *RestaurantController) CreateRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var restaurant models.Restaurant
		if err := c.BindJSON(&restaurant); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		restaurant.ID = ctrl.store.Push(database.CollectionRestaurants)
		if restaurant.Menu == nil {
			restaurant.Menu = []models.Dish{}
		}
		for i := range restaurant.Menu {
			if restaurant.Menu[i].Dish_id == "" {
				restaurant.Menu[i].Dish_id = ctrl.store.Push(database.CollectionRestaurants)
			}
		}
		if err := validate.Struct(&restaurant); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionRestaurants, restaurant.ID, restaurant); err != nil {
			log.Println("restaurant insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant was not created"})
			return
		}
		c.JSON(http.StatusCreated, restaurant)
	}
}

type restaurantUpdateRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Description  *string   `json:"description"`
	Image        *string   `json:"image" validate:"omitempty,url"`
	Category     *[]string `json:"category"`
	Phone_number *string   `json:"phone_number"`
	Delivery_fee *float64  `json:"delivery_fee" validate:"omitempty,min=0"`
}

func (ctrl *RestaurantController) UpdateRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req restaurantUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		restaurantID := c.Param("restaurant_id")
		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, restaurantID, &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		if req.Name != nil {
			restaurant.Name = *req.Name
		}
		if req.Description != nil {
			restaurant.Description = *req.Description
		}
		if req.Image != nil {
			restaurant.Image = *req.Image
		}
		if req.Category != nil {
			restaurant.Category = *req.Category
		}
		if req.Phone_number != nil {
			restaurant.Phone_number = req.Phone_number
		}
		if req.Delivery_fee != nil {
			restaurant.Delivery_fee = *req.Delivery_fee
		}

		if err := ctrl.store.Set(ctx, database.CollectionRestaurants, restaurantID, restaurant); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant update failed"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func (ctrl *RestaurantController) DeleteRestaurant() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		restaurantID := c.Param("restaurant_id")
		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, restaurantID, &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		if err := ctrl.store.Remove(ctx, database.CollectionRestaurants, restaurantID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restaurant delete failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "restaurant deleted"})
	}
}

func (ctrl *RestaurantController) AddDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var dish models.Dish
		if err := c.BindJSON(&dish); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dish.Dish_id = ctrl.store.Push(database.CollectionRestaurants)
		if err := validate.Struct(&dish); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		restaurantID := c.Param("restaurant_id")
		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, restaurantID, &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		restaurant.Menu = append(restaurant.Menu, dish)
		if err := ctrl.store.Set(ctx, database.CollectionRestaurants, restaurantID, restaurant); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dish was not added"})
			return
		}
		c.JSON(http.StatusCreated, dish)
	}
}

type dishUpdateRequest struct {
	Name             *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price" validate:"omitempty,min=0"`
	Category         *string  `json:"category"`
	Has_spicy_option *bool    `json:"has_spicy_option"`
}

func (ctrl *RestaurantController) UpdateDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		var req dishUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		restaurantID := c.Param("restaurant_id")
		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, restaurantID, &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		dishID := c.Param("dish_id")
		updated := false
		for i := range restaurant.Menu {
			if restaurant.Menu[i].Dish_id != dishID {
				continue
			}
			if req.Name != nil {
				restaurant.Menu[i].Name = *req.Name
			}
			if req.Description != nil {
				restaurant.Menu[i].Description = *req.Description
			}
			if req.Price != nil {
				restaurant.Menu[i].Price = *req.Price
			}
			if req.Category != nil {
				restaurant.Menu[i].Category = *req.Category
			}
			if req.Has_spicy_option != nil {
				restaurant.Menu[i].Has_spicy_option = *req.Has_spicy_option
			}
			updated = true
			break
		}
		if !updated {
			c.JSON(http.StatusNotFound, gin.H{"error": "dish not found"})
			return
		}

		if err := ctrl.store.Set(ctx, database.CollectionRestaurants, restaurantID, restaurant); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "dish update failed"})
			return
		}
		c.JSON(http.StatusOK, restaurant)
	}
}

func (ctrl *RestaurantController) DeleteDish() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		restaurantID := c.Param("restaurant_id")
		var restaurant models.Restaurant
		err := ctrl.store.Get(ctx, database.CollectionRestaurants, restaurantID, &restaurant)
		if errors.Is(err, database.ErrNoDocument) {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the restaurant"})
			return
		}

		dishID := c.Param("dish_id")
		for i := range restaurant.Menu {
			if restaurant.Menu[i].Dish_id != dishID {
				continue
			}
			restaurant.Menu = append(restaurant.Menu[:i], restaurant.Menu[i+1:]...)
			if err := ctrl.store.Set(ctx, database.CollectionRestaurants, restaurantID, restaurant); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "dish delete failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": "dish deleted"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "dish not found"})
	}
}

type DishSearchResult struct {
	Dish            models.Dish `json:"dish"`
	Restaurant_id   string      `json:"restaurant_id"`
	Restaurant_name string      `json:"restaurant_name"`
}

// SearchDishes scans every menu for dishes whose name contains the query,
// case-insensitively.
func (ctrl *RestaurantController) SearchDishes() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()

		query := strings.ToLower(strings.TrimSpace(c.Query("q")))
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
			return
		}

		var restaurants []models.Restaurant
		if err := ctrl.store.List(ctx, database.CollectionRestaurants, &restaurants); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while searching dishes"})
			return
		}

		results := make([]DishSearchResult, 0)
		for _, restaurant := range restaurants {
			for _, dish := range restaurant.Menu {
				if strings.Contains(strings.ToLower(dish.Name), query) {
					results = append(results, DishSearchResult{
						Dish:            dish,
						Restaurant_id:   restaurant.ID,
						Restaurant_name: restaurant.Name,
					})
				}
			}
		}
		c.JSON(http.StatusOK, results)
	}
}
