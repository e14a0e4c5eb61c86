package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN            string `env:"DSN,required"`
		ConnectTimeout int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout   int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		MaxOpenConns   int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns   int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime    int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Admin struct {
		Username     string `env:"USERNAME" envDefault:"admin"`
		PasswordHash string `env:"PASSWORD_HASH,required"`
	} `envPrefix:"ADMIN_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"1209600"` // 14 days
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	RabbitMQ struct {
		DSN            string `env:"DSN"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host             string `env:"HOST"`
		Port             int    `env:"PORT" envDefault:"6379"`
		Password         string `env:"PASSWORD"`
		OperationTimeout int    `env:"OPERATION_TIMEOUT" envDefault:"10"`
		CacheExpiration  int    `env:"CACHE_EXPIRATION" envDefault:"300"`
	} `envPrefix:"REDIS_"`
	SMTP struct {
		Username    string `env:"USERNAME"`
		Password    string `env:"PASSWORD"`
		Host        string `env:"HOST"`
		Port        int    `env:"PORT" envDefault:"465"`
		DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SMTP_"`
	Notify struct {
		To string `env:"TO"`
	} `envPrefix:"NOTIFY_"`
}

func LoadConfig() (*Config, error) {
	// A .env file is a development convenience, its absence is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// only return the first error to keep the logs readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}
