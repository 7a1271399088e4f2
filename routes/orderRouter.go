package routes

import (
	"weeat/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, controller *controllers.OrderController, ratingController *controllers.RatingController) {
	incomingRoutes.GET("/orders", controller.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder())
	incomingRoutes.POST("/orders", controller.CreateOrder())
	incomingRoutes.POST("/orders/:order_id/items", controller.AddItem())
	incomingRoutes.PUT("/orders/:order_id/participants/:participant_id/items", controller.UpdateParticipantItems())
	incomingRoutes.DELETE("/orders/:order_id/participants/:participant_id", controller.RemoveParticipant())
	incomingRoutes.POST("/orders/:order_id/finalize", controller.FinalizeOrder())
	incomingRoutes.POST("/orders/:order_id/archive", controller.ArchiveOrder())
	incomingRoutes.GET("/orders/:order_id/settlement", controller.GetSettlement())
	incomingRoutes.GET("/orders/:order_id/collated", controller.GetCollatedList())
	incomingRoutes.GET("/orders/:order_id/qrcode", controller.GetOrderQRCode())
	incomingRoutes.POST("/orders/:order_id/ratings", ratingController.SubmitRating())
	incomingRoutes.GET("/ws", controllers.HandleWebSocket())
}
