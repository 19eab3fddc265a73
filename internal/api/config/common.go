package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Posts    PostsConfig    `mapstructure:"posts"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Security SecurityConfig `mapstructure:"security"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Cron     CronConfig     `mapstructure:"cron"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Driver      string `mapstructure:"driver"` // mysql | postgres | sqlite
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// PostsConfig 列表分页
type PostsConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// CacheConfig 首页整页缓存
type CacheConfig struct {
	IndexTTL int `mapstructure:"index_ttl"` // seconds
}

type SecurityConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	JWTExpiration int    `mapstructure:"jwt_expiration"` // hours
	SecureCookie  bool   `mapstructure:"secure_cookie"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	PublicEndpoint string `mapstructure:"public_endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	Bucket         string `mapstructure:"bucket"`
	UseSSL         bool   `mapstructure:"use_ssl"`
}

type KafkaConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	Brokers []string   `mapstructure:"brokers"`
	Topic   string     `mapstructure:"topic"`
	Sasl    SaslConfig `mapstructure:"sasl"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type CronConfig struct {
	MediaClean string `mapstructure:"media_clean"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
