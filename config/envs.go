package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported maze stores.
const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP        string `env:"HOST_IP" envDefault:"0.0.0.0"`        // Host IP for the server
	RESTPort      int    `env:"REST_PORT" envDefault:"8080"`         // Port for the REST API
	GinMode       string `env:"GIN_MODE" envDefault:"release"`       // Mode for the Gin framework (e.g., release, debug, test)
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"mongo"`     // Maze and author store: mongo or sqlite
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"mazes.db"`   // Database file when StoreDriver is sqlite
	DBHost        string `env:"DB_HOST"`                             // Hostname or IP address for the database
	DBPort        int    `env:"DB_PORT" envDefault:"27017"`          // Port number for the database
	DBUser        string `env:"DB_USER"`                             // Username for the database
	DBPassword    string `env:"DB_PASS"`                             // Password for the database
	DBName        string `env:"DB_NAME" envDefault:"vinom_maze"`     // Name of the database
	RedisAddr     string `env:"REDIS_ADDR"`                          // Redis address; empty disables the maze cache
	RedisPassword string `env:"REDIS_PASSWORD"`                      // Password for Redis
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`             // Redis logical database
	CacheTTL      int    `env:"CACHE_TTL_SECONDS" envDefault:"3600"` // Lifetime of cached mazes
	JWTSecret     string `env:"JWT_SECRET,required,notEmpty"`        // Secret key for JWT signing
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"vinom-maze"`  // Issuer claim for JWTs
	MazeWidth     int    `env:"DEFAULT_MAZE_WIDTH" envDefault:"15"`  // Width used when a request omits it
	MazeHeight    int    `env:"DEFAULT_MAZE_HEIGHT" envDefault:"15"` // Height used when a request omits it
	MaxDimension  int    `env:"MAX_MAZE_DIMENSION" envDefault:"101"` // Largest accepted width or height
}

// Load reads a .env file if one is present and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.DBHost == "" {
			return errors.New("DB_HOST is required for the mongo store")
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if min(c.MazeWidth, c.MazeHeight) <= 0 || c.MaxDimension <= 0 {
		return errors.New("maze dimensions must be greater than 0")
	}
	if max(c.MazeWidth, c.MazeHeight) > c.MaxDimension {
		return fmt.Errorf("default maze %dx%d exceeds MAX_MAZE_DIMENSION %d", c.MazeWidth, c.MazeHeight, c.MaxDimension)
	}
	return nil
}

// MongoURI builds the connection string for the document store.
func (c *Config) MongoURI() string {
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s:%d", c.DBHost, c.DBPort)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%d", c.DBUser, c.DBPassword, c.DBHost, c.DBPort)
}

// RESTAddr is the listen address for the HTTP API.
func (c *Config) RESTAddr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}
