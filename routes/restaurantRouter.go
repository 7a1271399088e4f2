package routes

import (
	"weeat/controllers"

	"github.com/gin-gonic/gin"
)

func RestaurantRoutes(incomingRoutes *gin.Engine, controller *controllers.RestaurantController) {
	incomingRoutes.GET("/restaurants", controller.GetRestaurants())
	incomingRoutes.GET("/restaurants/:restaurant_id", controller.GetRestaurant())
	incomingRoutes.POST("/restaurants", controller.CreateRestaurant())
	incomingRoutes.PATCH("/restaurants/:restaurant_id", controller.UpdateRestaurant())
	incomingRoutes.DELETE("/restaurants/:restaurant_id", controller.DeleteRestaurant())
	incomingRoutes.POST("/restaurants/:restaurant_id/menu", controller.AddDish())
	incomingRoutes.PATCH("/restaurants/:restaurant_id/menu/:dish_id", controller.UpdateDish())
	incomingRoutes.DELETE("/restaurants/:restaurant_id/menu/:dish_id", controller.DeleteDish())
	incomingRoutes.GET("/dishes/search", controller.SearchDishes())
}
