package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	SourceFixtures = "fixtures"
	SourceMongo    = "mongo"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Port        string
	Environment string
	Domain      string

	DataSource    string
	FixturesPath  string
	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string
	// RedisPrefix namespaces every key the service writes.
	RedisPrefix string

	JWTSecret string
	TokenTTL  time.Duration

	ChatReplyDelay     time.Duration
	IssueRateLimit     int64
	ChatRateLimit      int64
	SignInAttemptLimit int64
	SignUpDisabled     bool

	CORSOrigins      []string
	TelegramBotToken string
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

// Load reads the configuration. Invalid values fall back to their defaults.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("GO_ENV", "development"),
		Domain:      getEnv("DOMAIN", ""),

		DataSource:    getEnv("DATA_SOURCE", SourceFixtures),
		FixturesPath:  getEnv("FIXTURES_PATH", ""),
		MongoURI:      getEnv("MONGODB_URI", ""),
		MongoDatabase: getEnv("MONGODB_DATABASE", "civiconnect"),

		RedisAddress:  getEnv("REDIS_ADDRESS", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisPrefix:   getEnv("REDIS_QUEUE_FOR_ISSUE_LIMIT", "civiconnect"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		TokenTTL:  getDuration("TOKEN_TTL", 24*time.Hour),

		ChatReplyDelay:     getDuration("CHAT_REPLY_DELAY", 600*time.Millisecond),
		IssueRateLimit:     getInt("ISSUE_RATE_LIMIT", 5),
		ChatRateLimit:      getInt("CHAT_RATE_LIMIT", 20),
		SignInAttemptLimit: getInt("SIGNIN_ATTEMPT_LIMIT", 5),
		SignUpDisabled:     getBool("SIGNUP_DISABLED", false),

		CORSOrigins:      getList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("Invalid %s %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		log.Printf("Invalid %s %q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %t", key, value, fallback)
		return fallback
	}
	return b
}

func getList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
