package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env into the process environment if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}
}
