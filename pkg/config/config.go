package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	MongoURI         string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase    string `envconfig:"MONGO_DATABASE" default:"bakery"`
	KafkaBrokers     string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	OrderEventsTopic string `envconfig:"ORDER_EVENTS_TOPIC" default:"order-events"`
	JWTSecret        string `envconfig:"JWT_SECRET" default:"dev-secret"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`

	// Free delivery applies strictly above the threshold, in Birr.
	DeliveryFee           float64 `envconfig:"DELIVERY_FEE" default:"20"`
	FreeDeliveryThreshold float64 `envconfig:"FREE_DELIVERY_THRESHOLD" default:"100"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
