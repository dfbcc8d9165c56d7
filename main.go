// file: main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/middlewares"
	"schoolku_backend/internals/route"
)

func main() {
	// 1) ENV
	configs.LoadEnv()

	// 2) Database
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// 3) Fiber app (sonic untuk encode/decode JSON)
	app := fiber.New(fiber.Config{
		AppName:      "schoolku-backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    10 * 1024 * 1024, // upload background template max 10MB
	})

	// 4) Middlewares global
	app.Use(requestid.New())
	app.Use(compress.New())
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// 5) Routes
	route.SetupRoutes(app, database.DB)

	// 6) Run + graceful shutdown
	port := configs.GetEnv("PORT", "3000")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("❌ Server berhenti: %v", err)
		}
	}()
	log.Printf("🚀 schoolku-backend listen di port %s", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("⏳ Shutdown server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("⚠️ Shutdown tidak mulus: %v", err)
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("✅ Server berhenti dengan rapi")
}
