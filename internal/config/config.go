package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// devFallbackSecret is only ever used when APP_ENV is "dev" or "test" and no
// JWT_SECRET has been supplied. Any other environment must provide an
// explicit secret or the process refuses to start.
const devFallbackSecret = "telemetry-dev-secret-do-not-deploy"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // secret used to sign JWTs
	TokenTTLHours int    // access token time-to-live in hours
	BcryptCost    int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  The JWT secret gets
// special treatment: outside of dev/test a missing secret is fatal, while
// dev and test fall back to a fixed value so local runs and tests work
// without extra setup.
func Load() Config {
	env := must("APP_ENV") // environment (dev/test/prod)
	return Config{
		Env:           env,
		Port:          must("APP_PORT"),                     // port to bind the HTTP server
		DBUser:        must("DB_USER"),                      // database user
		DBPass:        os.Getenv("DB_PASS"),                 // database password (empty allowed)
		DBHost:        must("DB_HOST"),                      // database host
		DBPort:        must("DB_PORT"),                      // database port
		DBName:        must("DB_NAME"),                      // database name
		JWTSecret:     loadJWTSecret(env),                   // signing secret, env-gated fallback
		TokenTTLHours: envIntDefault("TOKEN_TTL_HOURS", 24), // token validity window
		BcryptCost:    envIntDefault("BCRYPT_COST", 10),     // bcrypt cost factor
	}
}

// loadJWTSecret returns the configured signing secret.  A hardcoded fallback
// is acceptable only for dev and test environments; production deployments
// must supply JWT_SECRET explicitly.
func loadJWTSecret(env string) string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	if env == "dev" || env == "test" {
		log.Printf("JWT_SECRET not set; using built-in %s secret", env)
		return devFallbackSecret
	}
	log.Fatalf("JWT_SECRET is required when APP_ENV=%s", env)
	return "" // unreachable
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// envIntDefault reads an integer environment variable, falling back to def
// when the variable is unset or not a valid integer.
func envIntDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("invalid int for %s: %q, using default %d", key, s, def)
		return def
	}
	return n
}
