package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file if one is present.
// Missing files are fine; deployed environments inject variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Println("Warning: could not load .env file:", err)
		}
	}
}

// IsDevelopment reports whether the service runs in development mode.
// Internal error detail is only surfaced to clients in development.
func IsDevelopment() bool {
	env := os.Getenv("ENV")
	return env == "" || env == "development" || env == "dev"
}
