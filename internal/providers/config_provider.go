package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"untisd/internal/structures"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// A .env next to the working directory may carry the WebUntis
	// credentials; missing file is not an error.
	_ = godotenv.Load()

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("poll.interval", 5*time.Minute)
	viper.SetDefault("poll.daysToFuture", 30)
	viper.SetDefault("filter.mode", "none")
	viper.SetDefault("calendar.longName", true)
	viper.SetDefault("calendar.descriptionMode", "json")
	viper.SetDefault("calendar.room", "long")

	viper.BindEnv("untis.server", "UNTISD_SERVER")
	viper.BindEnv("untis.school", "UNTISD_SCHOOL")
	viper.BindEnv("untis.username", "UNTISD_USERNAME")
	viper.BindEnv("untis.password", "UNTISD_PASSWORD")
	viper.BindEnv("logger.level", "UNTISD_LOG_LEVEL")
	viper.BindEnv("poll.interval", "UNTISD_POLL_INTERVAL")
	viper.BindEnv("cache.enabled", "UNTISD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "UNTISD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "untisd"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
