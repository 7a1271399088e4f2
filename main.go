package main

import (
	"context"
	"log"
	"os"
	"time"

	"weeat/controllers"
	"weeat/database"
	"weeat/middleware"
	"weeat/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "weeat"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("could not connect to mongodb: %v", err)
	}
	defer client.Disconnect(context.Background())

	store := database.NewMongoStore(client, dbName)

	corsOrigin := os.Getenv("CORS_ORIGIN")
	if corsOrigin == "" {
		corsOrigin = "http://localhost:9000"
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.Monitoring())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RestaurantRoutes(router, controllers.NewRestaurantController(store))
	routes.OrderRoutes(router, controllers.NewOrderController(store), controllers.NewRatingController(store))
	routes.HistoryRoutes(router, controllers.NewHistoryController(store))
	routes.SuggestionRoutes(router, controllers.NewSuggestionController())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Printf("listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
