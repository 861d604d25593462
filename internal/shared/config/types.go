package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// LoginRateLimit caps login attempts per client IP per minute. Zero disables the limit.
	LoginRateLimit int `mapstructure:"login_rate_limit"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

func (j *JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessExpMinutes) * time.Minute
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
}

// SMSConfig describes the HTTP SMS gateway.
type SMSConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	GatewayURL     string `mapstructure:"gateway_url"`
	APIKey         string `mapstructure:"api_key"`
	SenderID       string `mapstructure:"sender_id"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// WhatsAppConfig describes the WhatsApp Cloud API credentials.
type WhatsAppConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	APIBaseURL     string `mapstructure:"api_base_url"`
	PhoneNumberID  string `mapstructure:"phone_number_id"`
	AccessToken    string `mapstructure:"access_token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// KafkaConfig configures the audit stream. An empty broker list disables publishing.
type KafkaConfig struct {
	Brokers  []string `mapstructure:"brokers"`
	Topic    string   `mapstructure:"topic"`
	ClientID string   `mapstructure:"client_id"`
}

type NotificationConfig struct {
	CompanyName  string `mapstructure:"company_name"`
	SMSEnabled   bool   `mapstructure:"sms_enabled"`
	WhatsApp     bool   `mapstructure:"whatsapp_enabled"`
	EmailEnabled bool   `mapstructure:"email_enabled"`
	// GuardTTLMinutes bounds how long a dispatched message id stays claimed in redis.
	GuardTTLMinutes int `mapstructure:"guard_ttl_minutes"`
	// TemplatesPath optionally points at a YAML file overriding the built-in message texts.
	TemplatesPath string `mapstructure:"templates_path"`
}

type ReportConfig struct {
	Recipients []string `mapstructure:"recipients"`
	Timezone   string   `mapstructure:"timezone"`
	// Schedule is a cron expression for the in-process daily report. Empty disables it.
	Schedule string `mapstructure:"schedule"`
}
