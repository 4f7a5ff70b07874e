package configs

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8000"`
	DBSource string `envconfig:"DB_SOURCE" default:"food.db"`

	JWTSecret        string        `envconfig:"JWT_SECRET" default:"changeme"`
	JWTTTL           time.Duration `envconfig:"JWT_TTL" default:"24h"`
	PaymentKeySecret string        `envconfig:"PAYMENT_KEY_SECRET" default:"test_secret"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using environment")
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		logrus.Fatalf("parse config: %v", err)
	}
	return &cfg
}
