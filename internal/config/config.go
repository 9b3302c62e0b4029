package config

import (
	"fmt"
	"os"
)

// DefaultListID is the Splitser list exported when SPLITSER_LIST_ID is not set.
const DefaultListID = "3ace0ff4-0229-4b05-8b25-f01684c44f57"

// Config holds application configuration
type Config struct {
	// Cookie is the Splitser session cookie sent with every API request.
	Cookie string
	// ListID identifies the list whose items are exported.
	ListID string
}

// New loads configuration from environment variables. A missing COOKIE is a
// fatal condition: the API rejects unauthenticated requests, so there is no
// point starting the export without it.
func New() (*Config, error) {
	cookie, ok := os.LookupEnv("COOKIE")
	if !ok || cookie == "" {
		return nil, fmt.Errorf("the COOKIE environment variable must be set to a valid Splitser session cookie")
	}

	cfg := &Config{
		Cookie: cookie,
		ListID: getEnv("SPLITSER_LIST_ID", DefaultListID),
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}
