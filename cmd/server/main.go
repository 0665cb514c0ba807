package main

import (
	"log"
	"net/http"
	"os"

	"mrt_fare/internal/config"
	"mrt_fare/internal/controllers"
	"mrt_fare/internal/logger"
	"mrt_fare/internal/middleware"
	"mrt_fare/internal/routes"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	// Database connection, schema migration, fare schedule seed
	config.InitDB()

	// Wire the core services over the store
	controllers.Init()

	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + port()
	log.Printf("fare engine listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
