package main

import (
	"log"

	"api/config"
	"api/database"
	"api/middleware"
	v1 "api/routes/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Chess Advice Experiment API
// @version 1.0
// @description API for running chess puzzle experiments with advice conditions and counterbalanced assignment
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	database.InitDB()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	v1.Register(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	middleware.UpdateSystemMetrics()

	log.Printf("Listening on :%s", config.APIPort)
	if err := r.Run(":" + config.APIPort); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
