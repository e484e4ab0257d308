package config

import (
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var Cfg Config

// 提醒事件可见性过滤模式
const (
	FilterEventsAll         = "all"
	FilterEventsOnlyVisible = "visible"
)

// 投递渠道：direct 由调度器直接推送，queue 经 RabbitMQ 由 worker 推送
const (
	DeliveryChannelDirect = "direct"
	DeliveryChannelQueue  = "queue"
)

type Config struct {
	// 服务配置
	ServerPort  string `env:"SERVER_PORT" envDefault:"8888"`
	ServerHost  string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // development, staging, production
	ServiceName string `env:"SERVICE_NAME" envDefault:"assign-reminders"`

	// PostgreSQL 配置
	PostgreSQLHost     string `env:"POSTGRESQL_HOST" envDefault:"localhost"`
	PostgreSQLPort     string `env:"POSTGRESQL_PORT" envDefault:"5432"`
	PostgreSQLUser     string `env:"POSTGRESQL_USER" envDefault:"postgres"`
	PostgreSQLPassword string `env:"POSTGRESQL_PASSWORD" envDefault:"postgres"`
	PostgreSQLDatabase string `env:"POSTGRESQL_DATABASE" envDefault:"assignreminders"`
	PostgreSQLSchema   string `env:"POSTGRESQL_SCHEMA" envDefault:"public"`
	PostgreSQLSSLMode  string `env:"POSTGRESQL_SSLMODE" envDefault:"disable"`
	PostgreSQLMaxIdle  int    `env:"POSTGRESQL_MAX_IDLE" envDefault:"30"`
	PostgreSQLMaxOpen  int    `env:"POSTGRESQL_MAX_OPEN" envDefault:"200"`

	// Redis 配置
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"asgnrmd"`

	// RabbitMQ 配置
	RabbitMQAddr     string `env:"RABBITMQ_ADDR" envDefault:"localhost"`
	RabbitMQPort     string `env:"RABBITMQ_PORT" envDefault:"5672"`
	RabbitMQUsername string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	RabbitMQPassword string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`
	RabbitMQVhost    string `env:"RABBITMQ_VHOST" envDefault:"/"`

	// 提醒调度配置。三个提前档位可独立开关，对应 7/3/1 天
	ReminderEnabled    bool          `env:"REMINDER_ENABLED" envDefault:"true"`
	Remind7DaysBefore  bool          `env:"REMIND_7DAYS_BEFORE" envDefault:"true"`
	Remind3DaysBefore  bool          `env:"REMIND_3DAYS_BEFORE" envDefault:"true"`
	Remind1DayBefore   bool          `env:"REMIND_1DAY_BEFORE" envDefault:"true"`
	FilterEvents       string        `env:"REMINDER_FILTER_EVENTS" envDefault:"all"` // all, visible
	SubmitterRoleIDs   []int64       `env:"REMINDER_SUBMITTER_ROLE_IDS" envSeparator:"," envDefault:"5"`
	FirstRunCutoffDays int           `env:"REMINDER_FIRST_RUN_CUTOFF_DAYS" envDefault:"1"`
	ScanInterval       time.Duration `env:"REMINDER_SCAN_INTERVAL" envDefault:"15m"`
	SendTimeout        time.Duration `env:"REMINDER_SEND_TIMEOUT" envDefault:"10s"`
	DeliveryChannel    string        `env:"REMINDER_DELIVERY_CHANNEL" envDefault:"direct"` // direct, queue
	ReminderSenderName string        `env:"REMINDER_SENDER_NAME" envDefault:"admin"`
	ReminderDateFormat string        `env:"REMINDER_DATE_FORMAT" envDefault:"2006-01-02 15:04"`
	ReminderTimezone   string        `env:"REMINDER_TIMEZONE" envDefault:"Asia/Shanghai"`
	ReminderRunLockTTL time.Duration `env:"REMINDER_RUN_LOCK_TTL" envDefault:"5m"`
	ReminderModuleName string        `env:"REMINDER_MODULE_NAME" envDefault:"assign"`
	ReminderEventType  string        `env:"REMINDER_EVENT_TYPE" envDefault:"due"`

	// 微信小程序配置
	WechatAppID               string `env:"WECHAT_APP_ID"`
	WechatAppSecret           string `env:"WECHAT_APP_SECRET"`
	WechatDueAssignTemplateID string `env:"WECHAT_DUE_ASSIGN_TEMPLATE_ID"`
	WechatAPIBase             string `env:"WECHAT_API_BASE" envDefault:"https://api.weixin.qq.com"`

	// 账号绑定 link token 配置
	LinkTokenSecret        string `env:"LINK_TOKEN_SECRET" envDefault:"dev-only-link-token-secret"` // LMS 与本服务共享的签名密钥，生产必须显式配置
	LinkTokenExpireMinutes int    `env:"LINK_TOKEN_EXPIRE_MINUTES" envDefault:"10"`

	// Snowflake ID 生成器配置
	SnowflakeMachineID  int64 `env:"SNOWFLAKE_MACHINE_ID" envDefault:"1"`
	SnowflakeDataCenter int64 `env:"SNOWFLAKE_DATACENTER_ID" envDefault:"1"`

	// 日志配置
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"INFO"`
	LoggerFormat     string `env:"LOGGER_FORMAT" envDefault:"text"` // json, text
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`

	// 链路追踪配置
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" envDefault:"localhost:4317"`
}

func init() {

	if err := godotenv.Load(); err != nil {

		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	Cfg = Config{}
	if err := env.Parse(&Cfg); err != nil {
		log.Fatalf("Failed to parse environment variables: %v", err)
	}

	validateConfig()
}

func validateConfig() {
	if Cfg.IsProduction() && Cfg.LinkTokenSecret == "dev-only-link-token-secret" {
		log.Fatal("LINK_TOKEN_SECRET must be explicitly configured in production")
	}

	switch Cfg.FilterEvents {
	case FilterEventsAll, FilterEventsOnlyVisible:
	default:
		log.Fatalf("REMINDER_FILTER_EVENTS must be %q or %q", FilterEventsAll, FilterEventsOnlyVisible)
	}

	switch Cfg.DeliveryChannel {
	case DeliveryChannelDirect, DeliveryChannelQueue:
	default:
		log.Fatalf("REMINDER_DELIVERY_CHANNEL must be %q or %q", DeliveryChannelDirect, DeliveryChannelQueue)
	}

	if Cfg.WechatAppID == "" || Cfg.WechatAppSecret == "" {
		log.Printf("WARN: WECHAT_APP_ID / WECHAT_APP_SECRET is not set, push delivery will not work")
	}
	if Cfg.WechatDueAssignTemplateID == "" {
		log.Printf("WARN: WECHAT_DUE_ASSIGN_TEMPLATE_ID is not set, push delivery will not work")
	}
	if len(Cfg.SubmitterRoleIDs) == 0 {
		log.Printf("WARN: REMINDER_SUBMITTER_ROLE_IDS is empty, role-resolved events will have no recipients")
	}
}

func (c *Config) GetDSN() string {
	return "host=" + c.PostgreSQLHost +
		" port=" + c.PostgreSQLPort +
		" user=" + c.PostgreSQLUser +
		" password=" + c.PostgreSQLPassword +
		" dbname=" + c.PostgreSQLDatabase +
		" sslmode=" + c.PostgreSQLSSLMode +
		" search_path=" + c.PostgreSQLSchema
}

func (c *Config) GetRabbitMQURL() string {
	return "amqp://" + c.RabbitMQUsername + ":" + c.RabbitMQPassword + "@" + c.RabbitMQAddr + ":" + c.RabbitMQPort + c.RabbitMQVhost
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SendOnlyVisible 是否只对可见事件发送提醒
func (c *Config) SendOnlyVisible() bool {
	return strings.EqualFold(c.FilterEvents, FilterEventsOnlyVisible)
}
