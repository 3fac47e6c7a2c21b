package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fishdata/internal/structures"
)

const appVersion = "1.2.0"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	// Optional .env for local development; deployments set env vars directly.
	_ = godotenv.Load()

	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "FISHDATA_LOG_LEVEL")
	viper.BindEnv("auth.keysFile", "FISHDATA_KEYS_FILE")
	viper.BindEnv("storage.bucket", "FISHDATA_BUCKET")
	viper.BindEnv("storage.cacheDir", "FISHDATA_CACHE_DIR")
	viper.BindEnv("cache.enabled", "FISHDATA_CACHE_ENABLED")
	viper.BindEnv("cache.size", "FISHDATA_CACHE_SIZE")

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

	if conf.Query.DefaultLimit > conf.Query.MaxLimit {
		return nil, fmt.Errorf("query.defaultLimit %d exceeds query.maxLimit %d", conf.Query.DefaultLimit, conf.Query.MaxLimit)
	}

	conf.AppName = "FishDataAPI"
	conf.Version = appVersion
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
