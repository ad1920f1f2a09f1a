package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Telegram  TelegramConfig
	API       APIConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Port int
	Env  string // "development", "production"
}

type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	User    string
	Pass    string
	Charset string
}

type RedisConfig struct {
	Addr string
	Pass string
	DB   int
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

type APIConfig struct {
	Key string
}

type SchedulerConfig struct {
	Enabled     bool
	Schedule    string
	Unattended  bool
	HistorySize int
}

// Load reads configuration from .env file and environment variables.
func Load() (*Config, error) {
	// Load .env file (ignore error if missing)
	_ = godotenv.Load()

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_ENV", "production")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "3306")
	viper.SetDefault("DB_CHARSET", "utf8mb4")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SCHEDULER_SCHEDULE", "0 * * * *")
	viper.SetDefault("SCHEDULER_UNATTENDED", false)
	viper.SetDefault("SCHEDULER_HISTORY_SIZE", 100)

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Database: DatabaseConfig{
			Host:    viper.GetString("DB_HOST"),
			Port:    viper.GetString("DB_PORT"),
			Name:    viper.GetString("DB_NAME"),
			User:    viper.GetString("DB_USER"),
			Pass:    viper.GetString("DB_PASS"),
			Charset: viper.GetString("DB_CHARSET"),
		},
		Redis: RedisConfig{
			Addr: viper.GetString("REDIS_ADDR"),
			Pass: viper.GetString("REDIS_PASS"),
			DB:   viper.GetInt("REDIS_DB"),
		},
		Telegram: TelegramConfig{
			Token:  viper.GetString("TELEGRAM_TOKEN"),
			ChatID: viper.GetInt64("TELEGRAM_CHAT_ID"),
		},
		API: APIConfig{
			Key: viper.GetString("API_KEY"),
		},
		Scheduler: SchedulerConfig{
			Enabled:     viper.GetBool("SCHEDULER_ENABLED"),
			Schedule:    viper.GetString("SCHEDULER_SCHEDULE"),
			Unattended:  viper.GetBool("SCHEDULER_UNATTENDED"),
			HistorySize: viper.GetInt("SCHEDULER_HISTORY_SIZE"),
		},
	}

	if cfg.Database.Name == "" {
		log.Println("WARNING: DB_NAME is not set")
	}
	if cfg.API.Key == "" {
		log.Println("WARNING: API_KEY is not set, the API is unauthenticated")
	}

	return cfg, nil
}

// DSN returns the MySQL DSN string for GORM.
func (d *DatabaseConfig) DSN() string {
	return d.User + ":" + d.Pass + "@tcp(" + d.Host + ":" + d.Port + ")/" + d.Name + "?charset=" + d.Charset + "&parseTime=True&loc=Local"
}
