package cli

import "os"

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	PlayerID    string
	DisplayName string
	Output      string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("LETTERDUEL_SERVER", "http://localhost:8080"),
		PlayerID:    os.Getenv("LETTERDUEL_PLAYER"),
		DisplayName: os.Getenv("LETTERDUEL_NAME"),
		Output:      "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
