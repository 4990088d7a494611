package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string
	Environment    string
	DatabaseDbPath string
	CacheAddress   string

	// SGK Vizite upstream
	SgkEndpoint    string
	SgkUsername    string
	SgkCompanyCode string
	SgkPassword    string

	// Sync loop
	SyncWindowDays  int
	SyncInterval    time.Duration
	AutoAcknowledge bool

	// Bulk operations
	BulkPace time.Duration
}

func InitConfig() (Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DATABASE_DB_PATH", "data/raporservisi.db")
	viper.SetDefault("CACHE_ADDRESS", "")

	viper.SetDefault("SGK_ENDPOINT", "https://uyg.sgk.gov.tr/WS_Vizite/services/ViziteGonder")
	viper.SetDefault("SGK_USERNAME", "")
	viper.SetDefault("SGK_COMPANY_CODE", "")
	viper.SetDefault("SGK_PASSWORD", "")

	viper.SetDefault("SYNC_WINDOW_DAYS", 7)
	viper.SetDefault("SYNC_INTERVAL", "15m")
	viper.SetDefault("AUTO_ACKNOWLEDGE", true)
	viper.SetDefault("BULK_PACE", "100ms")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, env vars and defaults cover it
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	config := Config{
		ServerPort:      viper.GetString("SERVER_PORT"),
		Environment:     viper.GetString("ENVIRONMENT"),
		DatabaseDbPath:  viper.GetString("DATABASE_DB_PATH"),
		CacheAddress:    viper.GetString("CACHE_ADDRESS"),
		SgkEndpoint:     viper.GetString("SGK_ENDPOINT"),
		SgkUsername:     viper.GetString("SGK_USERNAME"),
		SgkCompanyCode:  viper.GetString("SGK_COMPANY_CODE"),
		SgkPassword:     viper.GetString("SGK_PASSWORD"),
		SyncWindowDays:  viper.GetInt("SYNC_WINDOW_DAYS"),
		SyncInterval:    viper.GetDuration("SYNC_INTERVAL"),
		AutoAcknowledge: viper.GetBool("AUTO_ACKNOWLEDGE"),
		BulkPace:        viper.GetDuration("BULK_PACE"),
	}

	return config, nil
}
