package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

var ErrUnknownStorageDriver = errors.New("unknown STORAGE_DRIVER")

// Tables names the DynamoDB table of each resource.
type Tables struct {
	Customers string
	Vehicles  string
	Services  string
	JobItems  string
	JobCards  string
	Invoices  string
	Payments  string
}

// Config is the backend configuration, read from the environment.
type Config struct {
	Port          int
	StorageDriver string
	DatabaseURL   string
	SQLitePath    string

	AWSRegion        string
	AWSAccessKeyID   string
	AWSSecretKey     string
	DynamoDBEndpoint string
	Tables           Tables

	JWTSecret         string
	JWTExpiry         time.Duration
	AdminEmail        string
	AdminName         string
	AdminPassword     string
	AdminPasswordHash string

	CORSOrigins []string

	MercadoPagoAccessToken string
	PaymentGatewayMock     bool
	MercadoPagoPayerEmail  string

	LogLevel  string
	LogFormat string
}

// Load reads the configuration. Only malformed values are errors; anything
// missing falls back to a local-development default.
func Load() (Config, error) {
	cfg := Config{
		StorageDriver: strings.ToLower(getenvDefault("STORAGE_DRIVER", StorageDynamoDB)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getenvDefault("SQLITE_PATH", "garage.db"),

		AWSRegion:        getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:   getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretKey:     getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),
		Tables: Tables{
			Customers: getenvDefault("CUSTOMERS_TABLE", "customers"),
			Vehicles:  getenvDefault("VEHICLES_TABLE", "vehicles"),
			Services:  getenvDefault("SERVICES_TABLE", "services"),
			JobItems:  getenvDefault("JOBITEMS_TABLE", "jobitems"),
			JobCards:  getenvDefault("JOBCARDS_TABLE", "jobcards"),
			Invoices:  getenvDefault("INVOICES_TABLE", "invoices"),
			Payments:  getenvDefault("PAYMENTS_TABLE", "payments"),
		},

		JWTSecret:         getenvDefault("JWT_SECRET", "garage-dev-secret"),
		AdminEmail:        getenvDefault("ADMIN_EMAIL", "admin@garage.local"),
		AdminName:         getenvDefault("ADMIN_NAME", "Admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		CORSOrigins: splitList(getenvDefault("CORS_ORIGINS", "http://localhost:3000")),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		PaymentGatewayMock:     envFlag("PAYMENT_GATEWAY_MOCK") || envFlag("MERCADOPAGO_MOCK"),
		MercadoPagoPayerEmail:  os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL"),

		LogLevel:  getenvDefault("LOG_LEVEL", "info"),
		LogFormat: getenvDefault("LOG_FORMAT", "text"),
	}

	port, err := strconv.Atoi(getenvDefault("PORT", "8080"))
	if err != nil || port <= 0 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}
	cfg.Port = port

	cfg.JWTExpiry, err = time.ParseDuration(getenvDefault("JWT_EXPIRY", "24h"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid JWT_EXPIRY: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDynamoDB, StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres driver")
		}
	default:
		return Config{}, fmt.Errorf("%w %q", ErrUnknownStorageDriver, cfg.StorageDriver)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFlag(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
