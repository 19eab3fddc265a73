package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("posts.page_size", 10)
	v.SetDefault("cache.index_ttl", 20)

	v.SetDefault("security.jwt_secret", "yatube-dev-secret")
	v.SetDefault("security.jwt_expiration", 24)

	v.SetDefault("minio.bucket", "yatube")

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "yatube.events")

	v.SetDefault("cron.media_clean", "@daily")

	v.SetDefault("logstash.index", "logstash-yatube")
}

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("YATUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// Default 返回只包含默认值的配置，测试与本地启动使用
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}
