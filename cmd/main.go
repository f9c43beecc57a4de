package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api/handler"
	"github.com/RoyceAzure/lab/bookstore/internal/api/router"
	"github.com/RoyceAzure/lab/bookstore/internal/appcontext"
	"github.com/RoyceAzure/lab/bookstore/internal/config"
	"github.com/rs/zerolog"
)

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("module", app.Cf.ModulerName).Logger()

	// 初始化 handler
	bookHandler := handler.NewBookHandler(app.CatalogService, app.InventoryService)
	authorHandler := handler.NewAuthorHandler(app.CatalogService)
	cartHandler := handler.NewCartHandler(app.CartService)
	orderHandler := handler.NewOrderHandler(app.OrderService, app.PermissionService)
	reviewHandler := handler.NewReviewHandler(app.ReviewService, app.FavoriteService)
	userHandler := handler.NewUserHandler(app.UserService)

	server := router.NewServer(bookHandler, authorHandler, cartHandler, orderHandler, reviewHandler, userHandler)

	// 設置路由
	r := router.SetupRouter(server, app.UserService, app.PermissionService, &logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
