package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// OrderCacheTTL is how long a shaped order response stays cached.
	OrderCacheTTLSec int `mapstructure:"orderCacheTTLSec"`
}

type RabbitCfg struct {
	URL string `mapstructure:"url"`
}

type PayPalCfg struct {
	Mode         string        `mapstructure:"mode"` // sandbox | live
	ClientID     string        `mapstructure:"clientId"`
	ClientSecret string        `mapstructure:"clientSecret"`
	Timeout      time.Duration `mapstructure:"timeout"`
	BrandName    string        `mapstructure:"brandName"`
}

type TelegramCfg struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"botToken"`
	ChatID   string `mapstructure:"chatId"`
}

type Root struct {
	Server   ServerCfg   `mapstructure:"server"`
	Mysql    MysqlCfg    `mapstructure:"mysql"`
	Redis    RedisCfg    `mapstructure:"redis"`
	RabbitMQ RabbitCfg   `mapstructure:"rabbitmq"`
	PayPal   PayPalCfg   `mapstructure:"paypal"`
	Telegram TelegramCfg `mapstructure:"telegram"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	// .env carries secrets (paypal credentials) kept out of the yaml
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	v.SetEnvPrefix("PAYPAL_API")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.PayPal.Mode == "" {
		C.PayPal.Mode = "sandbox"
	}
	if C.PayPal.Timeout <= 0 {
		C.PayPal.Timeout = 10 * time.Second
	}
	if C.Redis.OrderCacheTTLSec <= 0 {
		C.Redis.OrderCacheTTLSec = 600
	}
}
