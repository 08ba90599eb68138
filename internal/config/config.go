package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"invoicegen/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	S3       S3Config
	Email    EmailConfig
	Auth     AuthConfig
	Workbook WorkbookConfig
	Billing  BillingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for the invoice archive.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// EmailConfig holds run-report email settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// AuthConfig holds the shared-secret JWT settings for the trigger API.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// WorkbookConfig locates the billing workbook and names its sheets.
type WorkbookConfig struct {
	Path               string `mapstructure:"path"`
	OrganizationsSheet string `mapstructure:"organizations_sheet"`
	RateCardSheet      string `mapstructure:"rate_card_sheet"`
	APIDetailsSheet    string `mapstructure:"api_details_sheet"`
	LedgerSheet        string `mapstructure:"ledger_sheet"`
	StandardSheet      string `mapstructure:"standard_sheet"`
	CustomSheet        string `mapstructure:"custom_sheet"`
	OutputDir          string `mapstructure:"output_dir"`
}

// SellerConfig identifies the invoicing entity on the e-invoice payload.
type SellerConfig struct {
	GSTIN     string `mapstructure:"gstin"`
	LegalName string `mapstructure:"legal_name"`
	Address1  string `mapstructure:"address1"`
	Address2  string `mapstructure:"address2"`
	Location  string `mapstructure:"location"`
	PINCode   int    `mapstructure:"pin_code"`
	StateCode string `mapstructure:"state_code"`
	Phone     string `mapstructure:"phone"`
	Email     string `mapstructure:"email"`
}

// BillingConfig holds tax jurisdiction and fallback policy settings.
type BillingConfig struct {
	HomeState    string              `mapstructure:"home_state"`
	StrictRates  bool                `mapstructure:"strict_rates"`
	StrictOrgs   bool                `mapstructure:"strict_orgs"`
	LedgerSource domain.LedgerSource `mapstructure:"ledger_source"`
	Template     string              `mapstructure:"template"`
	Seller       SellerConfig        `mapstructure:"seller"`
}

// Load reads configuration from environment variables with the INVGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invgen")
	v.SetDefault("db.password", "invgen_secret")
	v.SetDefault("db.name", "invgen_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "invgen-invoices")
	v.SetDefault("s3.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@example.in")
	v.SetDefault("email.from_name", "Invoice Generator")
	v.SetDefault("email.to_address", "")

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "invgen")

	// Workbook defaults
	v.SetDefault("workbook.path", "billing.xlsx")
	v.SetDefault("workbook.organizations_sheet", "Organizations")
	v.SetDefault("workbook.rate_card_sheet", "Rate Card")
	v.SetDefault("workbook.api_details_sheet", "API Details")
	v.SetDefault("workbook.ledger_sheet", "Payment Details")
	v.SetDefault("workbook.standard_sheet", "Provider Invoices")
	v.SetDefault("workbook.custom_sheet", "Custom Billing")
	v.SetDefault("workbook.output_dir", os.TempDir())

	// Billing defaults
	v.SetDefault("billing.home_state", "Karnataka")
	v.SetDefault("billing.strict_rates", false)
	v.SetDefault("billing.strict_orgs", false)
	v.SetDefault("billing.ledger_source", "workbook")
	v.SetDefault("billing.template", "invoice_template_long_service_description")
	v.SetDefault("billing.seller.gstin", "")
	v.SetDefault("billing.seller.legal_name", "")
	v.SetDefault("billing.seller.address1", "")
	v.SetDefault("billing.seller.address2", "")
	v.SetDefault("billing.seller.location", "")
	v.SetDefault("billing.seller.pin_code", 0)
	v.SetDefault("billing.seller.state_code", "")
	v.SetDefault("billing.seller.phone", "")
	v.SetDefault("billing.seller.email", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                  "INVGEN_SERVER_PORT",
		"server.read_timeout":          "INVGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":         "INVGEN_SERVER_WRITE_TIMEOUT",
		"server.environment":           "INVGEN_SERVER_ENVIRONMENT",
		"db.host":                      "INVGEN_DB_HOST",
		"db.port":                      "INVGEN_DB_PORT",
		"db.user":                      "INVGEN_DB_USER",
		"db.password":                  "INVGEN_DB_PASSWORD",
		"db.name":                      "INVGEN_DB_NAME",
		"db.sslmode":                   "INVGEN_DB_SSLMODE",
		"db.max_open":                  "INVGEN_DB_MAX_OPEN",
		"db.max_idle":                  "INVGEN_DB_MAX_IDLE",
		"s3.region":                    "INVGEN_S3_REGION",
		"s3.bucket":                    "INVGEN_S3_BUCKET",
		"s3.endpoint":                  "INVGEN_S3_ENDPOINT",
		"s3.access_key":                "INVGEN_S3_ACCESS_KEY",
		"s3.secret_key":                "INVGEN_S3_SECRET_KEY",
		"email.provider":               "INVGEN_EMAIL_PROVIDER",
		"email.region":                 "INVGEN_EMAIL_REGION",
		"email.from_address":           "INVGEN_EMAIL_FROM_ADDRESS",
		"email.from_name":              "INVGEN_EMAIL_FROM_NAME",
		"email.to_address":             "INVGEN_EMAIL_TO_ADDRESS",
		"auth.secret":                  "INVGEN_AUTH_SECRET",
		"auth.issuer":                  "INVGEN_AUTH_ISSUER",
		"workbook.path":                "INVGEN_WORKBOOK_PATH",
		"workbook.organizations_sheet": "INVGEN_WORKBOOK_ORGANIZATIONS_SHEET",
		"workbook.rate_card_sheet":     "INVGEN_WORKBOOK_RATE_CARD_SHEET",
		"workbook.api_details_sheet":   "INVGEN_WORKBOOK_API_DETAILS_SHEET",
		"workbook.ledger_sheet":        "INVGEN_WORKBOOK_LEDGER_SHEET",
		"workbook.standard_sheet":      "INVGEN_WORKBOOK_STANDARD_SHEET",
		"workbook.custom_sheet":        "INVGEN_WORKBOOK_CUSTOM_SHEET",
		"workbook.output_dir":          "INVGEN_WORKBOOK_OUTPUT_DIR",
		"billing.home_state":           "INVGEN_BILLING_HOME_STATE",
		"billing.strict_rates":         "INVGEN_BILLING_STRICT_RATES",
		"billing.strict_orgs":          "INVGEN_BILLING_STRICT_ORGS",
		"billing.ledger_source":        "INVGEN_BILLING_LEDGER_SOURCE",
		"billing.template":             "INVGEN_BILLING_TEMPLATE",
		"billing.seller.gstin":         "INVGEN_BILLING_SELLER_GSTIN",
		"billing.seller.legal_name":    "INVGEN_BILLING_SELLER_LEGAL_NAME",
		"billing.seller.address1":      "INVGEN_BILLING_SELLER_ADDRESS1",
		"billing.seller.address2":      "INVGEN_BILLING_SELLER_ADDRESS2",
		"billing.seller.location":      "INVGEN_BILLING_SELLER_LOCATION",
		"billing.seller.pin_code":      "INVGEN_BILLING_SELLER_PIN_CODE",
		"billing.seller.state_code":    "INVGEN_BILLING_SELLER_STATE_CODE",
		"billing.seller.phone":         "INVGEN_BILLING_SELLER_PHONE",
		"billing.seller.email":         "INVGEN_BILLING_SELLER_EMAIL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ToAddress:   v.GetString("email.to_address"),
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
	}
	cfg.Workbook = WorkbookConfig{
		Path:               v.GetString("workbook.path"),
		OrganizationsSheet: v.GetString("workbook.organizations_sheet"),
		RateCardSheet:      v.GetString("workbook.rate_card_sheet"),
		APIDetailsSheet:    v.GetString("workbook.api_details_sheet"),
		LedgerSheet:        v.GetString("workbook.ledger_sheet"),
		StandardSheet:      v.GetString("workbook.standard_sheet"),
		CustomSheet:        v.GetString("workbook.custom_sheet"),
		OutputDir:          v.GetString("workbook.output_dir"),
	}
	cfg.Billing = BillingConfig{
		HomeState:    v.GetString("billing.home_state"),
		StrictRates:  v.GetBool("billing.strict_rates"),
		StrictOrgs:   v.GetBool("billing.strict_orgs"),
		LedgerSource: domain.LedgerSource(v.GetString("billing.ledger_source")),
		Template:     v.GetString("billing.template"),
		Seller: SellerConfig{
			GSTIN:     v.GetString("billing.seller.gstin"),
			LegalName: v.GetString("billing.seller.legal_name"),
			Address1:  v.GetString("billing.seller.address1"),
			Address2:  v.GetString("billing.seller.address2"),
			Location:  v.GetString("billing.seller.location"),
			PINCode:   v.GetInt("billing.seller.pin_code"),
			StateCode: v.GetString("billing.seller.state_code"),
			Phone:     v.GetString("billing.seller.phone"),
			Email:     v.GetString("billing.seller.email"),
		},
	}

	return cfg, nil
}
