package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Receipt   ReceiptConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// ReceiptConfig holds the display constants used when rendering receipt text.
// Everything the renderer needs is carried here so rendering stays
// deterministic and free of process-wide state.
type ReceiptConfig struct {
	// OrgMarker prefixes the owner name in the receipt header, e.g. "ФОП".
	OrgMarker string
	// FooterMessage is the centered thank-you line at the bottom.
	FooterMessage string
	// DefaultLineWidth is used when a request does not specify charPerLine.
	DefaultLineWidth int
	// PaymentLabels maps payment-type codes to their printed labels.
	PaymentLabels map[string]string
	// UnknownPaymentLabel is printed for payment types missing from the table.
	UnknownPaymentLabel string
}

// PaymentLabel returns the printed label for a payment-type code.
func (c *ReceiptConfig) PaymentLabel(code string) string {
	if label, ok := c.PaymentLabels[code]; ok {
		return label
	}
	return c.UnknownPaymentLabel
}

type PrinterConfig struct {
	Type    string // "usb", "network" or "none"
	USBPath string
	Address string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "chek-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "chek")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("RECEIPT_ORG_MARKER", "ФОП")
	viper.SetDefault("RECEIPT_FOOTER_MESSAGE", "Дякуємо за покупку!")
	viper.SetDefault("RECEIPT_DEFAULT_LINE_WIDTH", 40)
	viper.SetDefault("RECEIPT_LABEL_CASH", "Готівка")
	viper.SetDefault("RECEIPT_LABEL_CASHLESS", "Безготівкова")
	viper.SetDefault("RECEIPT_LABEL_UNKNOWN", "НЕВІДОМИЙ ТИП ОПЛАТИ")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Receipt: ReceiptConfig{
			OrgMarker:        viper.GetString("RECEIPT_ORG_MARKER"),
			FooterMessage:    viper.GetString("RECEIPT_FOOTER_MESSAGE"),
			DefaultLineWidth: viper.GetInt("RECEIPT_DEFAULT_LINE_WIDTH"),
			PaymentLabels: map[string]string{
				"cash":     viper.GetString("RECEIPT_LABEL_CASH"),
				"cashless": viper.GetString("RECEIPT_LABEL_CASHLESS"),
			},
			UnknownPaymentLabel: viper.GetString("RECEIPT_LABEL_UNKNOWN"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
