package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Database     sharedConfig.DatabaseConfig     `mapstructure:"database"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Auth         sharedConfig.AuthConfig         `mapstructure:"auth"`
	Email        sharedConfig.EmailConfig        `mapstructure:"email"`
	SMS          sharedConfig.SMSConfig          `mapstructure:"sms"`
	WhatsApp     sharedConfig.WhatsAppConfig     `mapstructure:"whatsapp"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Kafka        sharedConfig.KafkaConfig        `mapstructure:"kafka"`
	Notification sharedConfig.NotificationConfig `mapstructure:"notification"`
	Report       sharedConfig.ReportConfig       `mapstructure:"report"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml and applies SERVIS_ environment overrides.
// A missing config file is not an error; defaults and env still apply.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("SERVIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", ModeForEnv(env))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// ModeForEnv maps an environment name to a gin mode.
func ModeForEnv(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings that would fail at first use instead of at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Mode == "release" && c.Auth.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be set in release mode")
	}
	if c.SMS.Enabled && c.SMS.GatewayURL == "" {
		return fmt.Errorf("sms.gateway_url is required when sms is enabled")
	}
	if c.WhatsApp.Enabled && (c.WhatsApp.PhoneNumberID == "" || c.WhatsApp.AccessToken == "") {
		return fmt.Errorf("whatsapp.phone_number_id and whatsapp.access_token are required when whatsapp is enabled")
	}
	return nil
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.login_rate_limit", 10)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "servis_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.issuer", "servis")
	v.SetDefault("auth.jwt.access_exp_minutes", 720)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "servis@frigoservis.local")
	v.SetDefault("email.from_name", "Frigo Servis")

	v.SetDefault("sms.enabled", false)
	v.SetDefault("sms.sender_id", "FrigoServis")
	v.SetDefault("sms.timeout_seconds", 10)

	v.SetDefault("whatsapp.enabled", false)
	v.SetDefault("whatsapp.api_base_url", "https://graph.facebook.com/v19.0")
	v.SetDefault("whatsapp.timeout_seconds", 10)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.topic", "servis.status-changes")
	v.SetDefault("kafka.client_id", "servis")

	v.SetDefault("notification.company_name", "Frigo Servis")
	v.SetDefault("notification.sms_enabled", true)
	v.SetDefault("notification.whatsapp_enabled", false)
	v.SetDefault("notification.email_enabled", false)
	v.SetDefault("notification.guard_ttl_minutes", 10)
	v.SetDefault("notification.templates_path", "")

	v.SetDefault("report.timezone", "Europe/Belgrade")
}
