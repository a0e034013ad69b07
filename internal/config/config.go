package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in the
// application: strings for identifiers and secrets, ints for durations and
// costs.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign admin JWTs
	AccessTTLMin    int    // admin token time-to-live in minutes
	BcryptCost      int    // bcrypt cost for password hashing
	AdminUsername   string // reserved username seeded at startup
	AdminPassword   string // initial credential for the seeded account
	AdminEmail      string // inbox receiving new-reservation alerts
	TurnstileSecret string // Cloudflare Turnstile secret key
	SMTPHost        string // SMTP relay host
	SMTPPort        int    // SMTP relay port (465 for SSL)
	SMTPUser        string // SMTP account username
	SMTPPass        string // SMTP account password
	SMTPFrom        string // From address on outgoing mail
	FrontendURL     string // base URL of the frontend, linked in admin alerts
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message. Mail settings default to the
// Gmail relay used by the original deployment when unset.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            getenv("APP_PORT", "3000"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:      mustInt("BCRYPT_COST"),
		AdminUsername:   getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:   must("ADMIN_PASSWORD"),
		AdminEmail:      must("SMTP_USER"), // admin alerts go to the sending inbox
		TurnstileSecret: must("TURNSTILE_SECRET_KEY"),
		SMTPHost:        getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:        intenv("SMTP_PORT", 465),
		SMTPUser:        must("SMTP_USER"),
		SMTPPass:        must("SMTP_PASS"),
		SMTPFrom:        must("SMTP_FROM"),
		FrontendURL:     os.Getenv("FRONTEND_URL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getenv returns the value of an optional variable or the given default.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intenv returns an optional integer variable or the given default. Values
// that fail to parse fall back to the default rather than aborting startup.
func intenv(key string, def int) int {
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
