package routes

import (
	"weeat/controllers"

	"github.com/gin-gonic/gin"
)

func HistoryRoutes(incomingRoutes *gin.Engine, controller *controllers.HistoryController) {
	incomingRoutes.GET("/history", controller.GetHistory())
	incomingRoutes.GET("/history/search", controller.FindOrderByCode())
	incomingRoutes.DELETE("/history/:order_id", controller.DeleteOrder())
}
