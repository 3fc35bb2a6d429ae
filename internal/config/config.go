package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Auth     AuthConfig     `json:"auth"`
	Market   MarketConfig   `json:"market"`
}

// ServerConfig contains server related configurations
type ServerConfig struct {
	Port int `json:"port"`
}

// DatabaseConfig contains database related configurations
type DatabaseConfig struct {
	Driver   string `json:"driver"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// AuthConfig contains authentication related configurations
type AuthConfig struct {
	JWTSecret     string `json:"jwt_secret"`
	JWTExpiration int    `json:"jwt_expiration"` // in hours
}

// MarketConfig seeds the marketplace on first run. Fee amounts are decimal
// strings in native value units; they are converted to base units when the
// initial fee configuration row is written.
type MarketConfig struct {
	AdminAccount       string `json:"admin_account"`
	OperatorAccount    string `json:"operator_account"`
	FeeRecipient       string `json:"fee_recipient"`
	PlatformFeePercent int    `json:"platform_fee_percent"`
	ListingFee         string `json:"listing_fee"`
	MintFeePerUnit     string `json:"mint_fee_per_unit"`
}

// Load loads the configuration from file and environment
func Load() (*Config, error) {
	// Default config
	cfg := &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Database: DatabaseConfig{
			Driver: "postgres",
			Host:   "localhost",
			Port:   5432,
			Name:   "gsoe",
		},
		Auth: AuthConfig{
			JWTExpiration: 24,
		},
		Market: MarketConfig{
			OperatorAccount:    "marketplace",
			PlatformFeePercent: 2,
			ListingFee:         "0.025",
			MintFeePerUnit:     "0.01",
		},
	}

	// Look for config file
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		// Use default config file path
		configFile = filepath.Join("configs", "config.json")
	}

	// Try to load config from file
	if _, err := os.Stat(configFile); err == nil {
		file, err := os.Open(configFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		if err := json.NewDecoder(file).Decode(cfg); err != nil {
			return nil, err
		}
	}

	// Override with environment variables if present
	if port := os.Getenv("SERVER_PORT"); port != "" {
		var serverPort int
		if _, err := fmt.Sscanf(port, "%d", &serverPort); err == nil {
			cfg.Server.Port = serverPort
		}
	}

	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		var databasePort int
		if _, err := fmt.Sscanf(dbPort, "%d", &databasePort); err == nil {
			cfg.Database.Port = databasePort
		}
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		cfg.Database.User = dbUser
	}
	if dbPass := os.Getenv("DB_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		cfg.Database.Name = dbName
	}

	if admin := os.Getenv("MARKET_ADMIN_ACCOUNT"); admin != "" {
		cfg.Market.AdminAccount = admin
	}
	if operator := os.Getenv("MARKET_OPERATOR_ACCOUNT"); operator != "" {
		cfg.Market.OperatorAccount = operator
	}
	if recipient := os.Getenv("MARKET_FEE_RECIPIENT"); recipient != "" {
		cfg.Market.FeeRecipient = recipient
	}

	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		cfg.Auth.JWTSecret = jwtSecret
	} else if cfg.Auth.JWTSecret == "" {
		// Generate a random JWT secret if not provided
		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			return nil, err
		}
		cfg.Auth.JWTSecret = base64.StdEncoding.EncodeToString(randomBytes)
	}

	// A fresh deployment collects fees at the admin account until reassigned
	if cfg.Market.FeeRecipient == "" {
		cfg.Market.FeeRecipient = cfg.Market.AdminAccount
	}

	return cfg, nil
}
