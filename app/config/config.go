package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds the bot configuration. The token comes only from the
// BOT_TOKEN environment variable, everything else from the yaml config file.
type Config struct {
	Bot struct {
		Token         string        `mapstructure:"token"`
		Port          string        `mapstructure:"port"`
		EvictSchedule string        `mapstructure:"evict_schedule"`
		EvictTTL      time.Duration `mapstructure:"evict_ttl"`
	} `mapstructure:"bot"`

	API struct {
		URL         string `mapstructure:"url"`
		FrontendURL string `mapstructure:"frontend_url"`
	} `mapstructure:"api"`

	Logger struct {
		ProductionMode  bool     `mapstructure:"production_mode"`
		LoggerOutput    []string `mapstructure:"logger_output"`
		LoggerErrOutput []string `mapstructure:"logger_err_output"`
	} `mapstructure:"logger"`
}

var (
	globalConfig *Config      //nolint:gochecknoglobals
	configMutex  sync.RWMutex //nolint:gochecknoglobals

	ErrNoBotToken = errors.New("BOT_TOKEN environment variable is not set")
	ErrNoAPIURL   = errors.New("api.url is not set in config")
)

func newConfig() (*Config, error) {
	config := Config{}

	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("unmarshal viper config: %w", err)
	}

	if config.Bot.Token == "" {
		return nil, ErrNoBotToken
	}

	if config.API.URL == "" {
		return nil, ErrNoAPIURL
	}

	return &config, nil
}

func UpdateGlobalConfig() error {
	configMutex.Lock()
	defer configMutex.Unlock()

	updateConfig, err := newConfig()
	if err != nil {
		return fmt.Errorf("new config: %w", err)
	}
	globalConfig = updateConfig

	return nil
}

func GetGlobalConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()

	return globalConfig
}

func InitConfig(configPaths []string) error {
	initDefaults()
	initEnvironment()

	if err := initConfigFile(configPaths); err != nil {
		return err
	}

	if err := UpdateGlobalConfig(); err != nil {
		return fmt.Errorf("update global config: %w", err)
	}

	return nil
}

func initDefaults() {
	viper.SetDefault("logger.production_mode", false)
	viper.SetDefault("logger.logger_output", []string{"stdout"})
	viper.SetDefault("logger.logger_err_output", []string{"stderr"})

	viper.SetDefault("bot.port", ":8081")
	viper.SetDefault("bot.evict_schedule", "0 * * * *")
	viper.SetDefault("bot.evict_ttl", 24*time.Hour)
}

func initEnvironment() {
	viper.MustBindEnv("bot.token", "BOT_TOKEN")
}

func initConfigFile(configPaths []string) error {
	viper.SetConfigName("config.yaml")
	viper.SetConfigType("yaml")

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	return nil
}
