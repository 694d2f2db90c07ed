package handlers

import (
	"time"

	"github.com/ErenSahind/qr-menu/internal/awsx"
	"github.com/ErenSahind/qr-menu/internal/catalog"
)

// HandlerConfig groups dependencies for the HTTP handlers.
type HandlerConfig struct {
	DynamoDBClient   awsx.DynamoDBAPI
	SQSClient        awsx.SQSAPI
	CloudWatchClient awsx.CloudWatchAPI

	CatalogTables    catalog.Tables
	CartTable        string
	OrdersTable      string
	IdempotencyTable string
	ProfilesTable    string

	QueueURL         string
	MetricsNamespace string

	TTLWindow time.Duration // idempotency record lifetime
	CartTTL   time.Duration // abandoned cart lifetime
}
