package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// MongoDB (primary store)
	MongoURL     string
	MongoDB      string
	MongoTimeout time.Duration

	// JWT session tokens
	JWTSecret string
	JWTTTL    time.Duration

	// Uploaded images
	UploadsDir    string
	PublicBaseURL string // prefix for local upload paths, empty keeps "/uploads/<name>"
	MaxUploadMB   int    // body cap for multipart uploads, 0 disables

	// Redis (booking lock, token revocation, rate limiting); empty addr disables
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	BookingLockTTL time.Duration

	// Google Cloud Storage; a bucket selects GCS over local disk
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// Elasticsearch listing search; empty addrs disables
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESListingsIndex    string

	// Postgres audit log; empty url disables
	AuditDatabaseURL string
	DBMaxConns       int32
	DBMinConns       int32
	DBMaxConnLife    time.Duration
	MigrationsDir    string

	// RabbitMQ email queue; empty url disables
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Email sending toggle
	MailSendEnabled bool

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Honor CF-Connecting-IP / X-Forwarded-For; enable only behind a trusted proxy
	TrustProxyHeaders bool

	// Prometheus /metrics endpoint
	MetricsEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "rentify"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "3001"),
		GinMode: getenv("GIN_MODE", "release"),

		MongoURL:     getenv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGO_DB", "Rentify"),
		MongoTimeout: getdur("MONGO_TIMEOUT", 10*time.Second),

		JWTSecret: getenv("JWT_SECRET", "devsecret"),
		JWTTTL:    getdur("JWT_TTL", 24*time.Hour),

		UploadsDir:    getenv("UPLOADS_DIR", "public/uploads"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", ""), "/"),
		MaxUploadMB:   getint("MAX_UPLOAD_MB", 10),

		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		RedisDB:        getint("REDIS_DB", 0),
		BookingLockTTL: getdur("BOOKING_LOCK_TTL", 5*time.Second),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESListingsIndex:    getenv("ES_LISTINGS_INDEX", "listings"),

		AuditDatabaseURL: getenv("AUDIT_DATABASE_URL", ""),
		DBMaxConns:       int32(getint("DB_MAX_CONNS", 5)),
		DBMinConns:       int32(getint("DB_MIN_CONNS", 1)),
		DBMaxConnLife:    getdur("DB_MAX_CONN_LIFETIME", time.Hour),
		MigrationsDir:    getenv("MIGRATIONS_DIR", "db/migrations"),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		CookieDomain: getenv("COOKIE_DOMAIN", ""),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		HTTPLogEnabled:    getbool("HTTP_LOG_ENABLED", false),
		TrustProxyHeaders: getbool("TRUST_PROXY_HEADERS", false),
		MetricsEnabled:    getbool("METRICS_ENABLED", true),
	}
}

// IsDevelopment reports whether internal error causes may be shown to clients.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// MaxUploadBytes caps register and listing-create request bodies; gin also
// buffers multipart parts up to this size in memory.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitCSV(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitCSV(c.ElasticsearchAddrs)
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
