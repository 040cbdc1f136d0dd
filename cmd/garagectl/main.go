// garagectl is a terminal front end for the garage admin API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"garage_admin/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
)

const defaultAPIURL = "http://localhost:8080"

func main() {
	logging.Setup(getenvDefault("LOG_LEVEL", "warn"), getenvDefault("LOG_FORMAT", "text"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(getenvDefault("GARAGE_API_URL", defaultAPIURL), os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(exitFailure)
	}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func getenvDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
