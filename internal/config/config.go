package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string        `yaml:"env" env-default:"local"`
	AppSecret  string        `yaml:"app_secret" env-required:"true" env:"APP_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env-default:"1h"`
	HTTPServer `yaml:"http_server"`
	Postgres   `yaml:"postgres"`
	Redis      `yaml:"redis"`
	RabbitMQ   `yaml:"rabbitmq"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	StaticDir   string        `yaml:"static_dir" env-default:""`
}

type Postgres struct {
	Host     string `yaml:"host" env-default:"postgres"`
	Port     int    `yaml:"port" env-default:"5432"`
	User     string `yaml:"user" env-required:"true"`
	Password string `yaml:"password" env-required:"true"`
	DBName   string `yaml:"dbname" env-required:"true"`
	SSLMode  string `yaml:"sslmode" env-default:"disable"`
}

type Redis struct {
	Host     string `yaml:"host" env-default:"redis:6379"`
	Password string `yaml:"password" env-default:""`
	DB       int    `yaml:"db" env-default:"0"`
}

type RabbitMQ struct {
	URL       string `yaml:"url" env-required:"true"`
	QueueName string `yaml:"queue_name" env-default:"notifications_queue"`
}

// NotifierConfig configures the notification worker binary.
type NotifierConfig struct {
	Env                string `yaml:"env" env-default:"local"`
	RabbitMQURL        string `yaml:"rabbitmq_url" env-required:"true"`
	QueueName          string `yaml:"queue_name" env-default:"notifications_queue"`
	AdministratorEmail string `yaml:"administrator_email" env-required:"true"`
	Email              `yaml:"email"`
}

type Email struct {
	Host     string `yaml:"host" env-default:"smtp.gmail.com"`
	Port     int    `yaml:"port" env-default:"587"`
	Username string `yaml:"username" env-required:"true"`
	Password string `yaml:"password" env-required:"true"`
}

func MustLoad(configPath string) *Config {
	var cfg Config
	mustRead(configPath, &cfg)
	return &cfg
}

func MustLoadNotifier(configPath string) *NotifierConfig {
	var cfg NotifierConfig
	mustRead(configPath, &cfg)
	return &cfg
}

func mustRead(configPath string, cfg any) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		log.Fatalf("cannot read config: %s", configPath)
	}
}

// Path resolves the config file location, preferring CONFIG_PATH.
func Path(def string) string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return def
}
