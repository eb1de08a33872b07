package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Blog    BlogConfig    `yaml:"blog"`
	CORS    CORSConfig    `yaml:"cors"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MongoConfig carries the durable backend settings. URI comes from the
// MONGODB_URI environment variable; its presence is what selects the
// durable backend at startup.
type MongoConfig struct {
	URI      string `yaml:"-"`
	Database string `yaml:"database"`
}

// BlogConfig holds the post defaults and the closed category set.
type BlogConfig struct {
	DefaultAuthor   string   `yaml:"default_author"`
	DefaultCategory string   `yaml:"default_category"`
	Categories      []string `yaml:"categories"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	c.Mongo.URI = os.Getenv("MONGODB_URI")
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
