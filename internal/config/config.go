package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Mail      MailConfig
	JWTSecret string
	LogLevel  string
}

type ServerConfig struct {
	Port       int
	UploadsDir string
}

// StoreConfig selects the user store backend. Driver is one of
// "mongo", "mysql" or "memory".
type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	MySQL         DatabaseConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// MailConfig holds the SMTP credentials used for verification emails.
// Mail is disabled when User is empty.
type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

func (m MailConfig) Enabled() bool {
	return m.User != ""
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s file: %w", envFile, err)
	}

	serverPort, err := getEnvInt("PORT", 31000)
	if err != nil {
		return nil, err
	}
	dbPort, err := getEnvInt("DB_PORT", 3306)
	if err != nil {
		return nil, err
	}
	mailPort, err := getEnvInt("EMAIL_PORT", 587)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:       serverPort,
			UploadsDir: getEnv("UPLOADS_DIR", "./uploads"),
		},
		Store: StoreConfig{
			Driver:        getEnv("STORE_DRIVER", "mongo"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "account"),
			MySQL: DatabaseConfig{
				Host:     getEnv("DB_HOST", "localhost"),
				Port:     dbPort,
				User:     getEnv("DB_USER", "gouser"),
				Password: getEnv("DB_PASSWORD", "gopass"),
				Name:     getEnv("DB_NAME", "godb"),
			},
		},
		Mail: MailConfig{
			Host:     getEnv("EMAIL_HOST", "smtp.gmail.com"),
			Port:     mailPort,
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
		},
		JWTSecret: getEnv("JWT_SECRET", "my_secret_key"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
