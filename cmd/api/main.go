package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/fluxpay/dummy-connector/internal/aws"
	"github.com/fluxpay/dummy-connector/internal/handlers"
	"github.com/fluxpay/dummy-connector/internal/logger"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterPaymentRoutes(r, cfg)

	return r
}

func main() {
	logger.Init(os.Getenv("APP_ENV"))

	clients, err := aws.NewClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	cfg := handlers.HandlerConfig{
		DynamoDBClient: clients.DynamoDB,
		SQSClient:      clients.SQS,
		KVTable:        os.Getenv("KV_TABLE"),
		QueueURL:       os.Getenv("PAYMENT_EVENTS_QUEUE_URL"),
		BaseURL:        os.Getenv("BASE_URL"),
		PaymentTTL:     envDuration("PAYMENT_TTL_SECONDS", time.Second, 900*time.Second),
		Delay:          envDuration("SIMULATED_DELAY_MS", time.Millisecond, 500*time.Millisecond),
		Tolerance:      envDuration("SIMULATED_TOLERANCE_MS", time.Millisecond, 200*time.Millisecond),
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

func envDuration(name string, unit, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		log.Printf("invalid %s=%q, using default", name, raw)
		return fallback
	}
	return time.Duration(n) * unit
}
