package routes

import (
	"weeat/controllers"

	"github.com/gin-gonic/gin"
)

func SuggestionRoutes(incomingRoutes *gin.Engine, controller *controllers.SuggestionController) {
	incomingRoutes.POST("/suggestions", controller.GetSuggestions())
}
