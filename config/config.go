package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads .env and warns about missing provider keys. Keys are only
// required once a tournament actually reaches that provider, so missing
// ones are a warning, not a startup failure.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	for _, env := range []string{"OPENAI_API_KEY", "OPENROUTER_API_KEY", "GROQ_API_KEY"} {
		if os.Getenv(env) == "" {
			log.Printf("Warning: %s environment variable not set\n", env)
		}
	}
}

// Getenv returns the variable's value or def when unset.
func Getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetenvInt returns the variable parsed as int, or def when unset or
// unparsable.
func GetenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
