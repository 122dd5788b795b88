package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
	exchangeKeyENV    = "EXCHANGE_API_KEY"
	exchangeSecretENV = "EXCHANGE_API_SECRET"
)

const defaultSignalPollMin = 60

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		Name       string `yaml:"name"`
		HealthAddr string `yaml:"health_addr"`
	} `yaml:"service"`

	Exchange struct {
		BaseURL       string `yaml:"base_url"`
		WSURL         string `yaml:"ws_url"`
		APIKey        string `yaml:"api_key"`
		APISecret     string `yaml:"api_secret"`
		UseMock       bool   `yaml:"use_mock"`
		StreamTickers bool   `yaml:"stream_tickers"`
	} `yaml:"exchange"`

	SignalFeed struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		UseMock bool   `yaml:"use_mock"`
	} `yaml:"signal_feed"`

	GradeFeed struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		UseMock bool   `yaml:"use_mock"`
	} `yaml:"grade_feed"`

	Jaeger struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"jaeger"`

	// Отслеживаемые активы (базовые тикеры, например BTC, ETH)
	Assets []string `yaml:"assets"`

	// Интервалы периодических циклов, минуты
	SignalPollMin     int `yaml:"signal_poll_min"`
	SuggestMin        int `yaml:"suggest_min"`
	CatalogRefreshMin int `yaml:"catalog_refresh_min"`
}

// SignalPollInterval: любое неположительное значение заменяется дефолтом (60 минут).
func (c *Config) SignalPollInterval() time.Duration {
	m := c.SignalPollMin
	if m <= 0 {
		m = defaultSignalPollMin
	}
	return time.Duration(m) * time.Minute
}

func (c *Config) SuggestInterval() time.Duration {
	m := c.SuggestMin
	if m <= 0 {
		m = 15
	}
	return time.Duration(m) * time.Minute
}

func (c *Config) CatalogRefreshInterval() time.Duration {
	m := c.CatalogRefreshMin
	if m <= 0 {
		m = 30
	}
	return time.Duration(m) * time.Minute
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		SignalPollMin:     intFromEnv("SIGNAL_POLL_MIN", defaultSignalPollMin),
		SuggestMin:        intFromEnv("SUGGEST_MIN", 15),
		CatalogRefreshMin: intFromEnv("CATALOG_REFRESH_MIN", 30),
	}
	config.Service.Name = getenvDefault("SERVICE_NAME", "trade-compass")
	config.Service.HealthAddr = getenvDefault("HEALTH_ADDR", ":8080")

	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	if k := os.Getenv(exchangeKeyENV); k != "" {
		config.Exchange.APIKey = k
	}
	if s := os.Getenv(exchangeSecretENV); s != "" {
		config.Exchange.APISecret = s
	}

	return &config, nil
}

func getenvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("env %s is required", key))
	}
	return v
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
