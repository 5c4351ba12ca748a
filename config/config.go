package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	Server Server
	Sheets Sheets
	PDF    PDF
	Print  Print
	Redis  Redis
	AWS    AWS
}

// Server holds HTTP server settings.
type Server struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string // comma-separated, or "*" for all
}

// Sheets holds the Google Sheets row-store settings.
type Sheets struct {
	SpreadsheetID      string
	ServiceAccountJSON string // raw JSON of the service account key
	AreasSheet         string // tab listing areas and their active flag / quota
	NeighborhoodsSheet string // tab listing the neighborhood options
	Timezone           string // IANA name used for registration timestamps
}

// PDF holds ticket rendering settings.
type PDF struct {
	LogoPath string // optional PNG shown at the top of each ticket
}

// Print holds the print-forwarding server settings. Both values empty
// means forwarding is disabled.
type Print struct {
	ServerURL string
	Token     string
}

// Redis holds Redis connection settings for the print-job queue.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// AWS holds S3 settings for the optional ticket PDF archive.
type AWS struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	TicketsBucket   string
}

// DefaultSpreadsheetID is the production spreadsheet; SPREADSHEET_ID
// overrides it.
const DefaultSpreadsheetID = "1eEvF5c8rTXwWKqgmyCMXU5OPJKqBk5XPt4Yry5B4x5c"

// Load reads configuration from environment, with optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env

	readTimeout, _ := strconv.Atoi(getEnv("READ_TIMEOUT_SEC", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT_SEC", "30"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	cfg := &Config{
		Server: Server{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        readTimeout,
			WriteTimeout:       writeTimeout,
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Sheets: Sheets{
			SpreadsheetID:      getEnv("SPREADSHEET_ID", DefaultSpreadsheetID),
			ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
			AreasSheet:         getEnv("NOMES_SHEET", "Nomes"),
			NeighborhoodsSheet: getEnv("BAIRROS_SHEET", "Bairro"),
			Timezone:           getEnv("APP_TZ", "America/Manaus"),
		},
		PDF: PDF{
			LogoPath: getEnv("PDF_LOGO_PATH", ""),
		},
		Print: Print{
			ServerURL: getEnv("PRINT_SERVER_URL", ""),
			Token:     getEnv("PRINT_TOKEN", ""),
		},
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		AWS: AWS{
			Region:          getEnv("AWS_REGION", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			TicketsBucket:   getEnv("AWS_S3_TICKETS_BUCKET", ""),
		},
	}
	return cfg, nil
}

// Enabled reports whether print forwarding is fully configured.
func (p Print) Enabled() bool {
	return strings.TrimSpace(p.ServerURL) != "" && strings.TrimSpace(p.Token) != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
