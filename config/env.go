package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls variables from a .env file into the process environment.
// A missing file is fine; env vars can be set by other means.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
}
