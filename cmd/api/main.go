package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/ErenSahind/qr-menu/internal/awsx"
	"github.com/ErenSahind/qr-menu/internal/catalog"
	"github.com/ErenSahind/qr-menu/internal/handlers"
	"github.com/ErenSahind/qr-menu/internal/i18n"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(i18n.Middleware())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterMenuRoutes(r, cfg)
	handlers.RegisterCartRoutes(r, cfg)
	handlers.RegisterAuthRoutes(r, cfg)
	handlers.RegisterSetupRoutes(r, cfg)

	return r
}

func main() {
	clients, err := awsx.NewClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient:   clients.DynamoDB,
		SQSClient:        clients.SQS,
		CloudWatchClient: clients.CloudWatch,
		CatalogTables: catalog.Tables{
			Branches:   os.Getenv("BRANCHES_TABLE"),
			Categories: os.Getenv("CATEGORIES_TABLE"),
			Products:   os.Getenv("PRODUCTS_TABLE"),
			Tables:     os.Getenv("TABLES_TABLE"),
		},
		CartTable:        os.Getenv("CART_TABLE"),
		OrdersTable:      os.Getenv("ORDERS_TABLE"),
		IdempotencyTable: os.Getenv("IDEMPOTENCY_TABLE"),
		ProfilesTable:    os.Getenv("PROFILES_TABLE"),
		QueueURL:         os.Getenv("ORDERS_QUEUE_URL"),
		MetricsNamespace: "QRMenu",
		TTLWindow:        48 * time.Hour,
		CartTTL:          24 * time.Hour,
	}

	r := setupRouter(cfg)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if os.Getenv("RUN_LOCAL") == "true" {
		addr := ":8080"
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
