package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        `yaml:"app"`
	Logger     `yaml:"log"`
	Database   `yaml:"database"`
	Redis      `yaml:"redis"`
	HTTPServer `yaml:"http_server"`
	Key        `yaml:"key"`
	Outbox     `yaml:"outbox"`
	Chat       `yaml:"chat"`
}

type App struct {
	ServiceName string `yaml:"service_name" env:"APP_SERVICE_NAME" env-default:"messaging-back"`
	Version     string `yaml:"version" env:"APP_VERSION" env-default:"0.1.0"`
}

type Logger struct {
	Level      string   `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	FormatJSON bool     `yaml:"format_json" env:"LOG_FORMAT_JSON"`
	Rotation   Rotation `yaml:"rotation"`
}

type Rotation struct {
	File       string `yaml:"file" env:"LOG_ROTATION_FILE"`
	MaxSize    int    `yaml:"max_size" env:"LOG_ROTATION_MAX_SIZE" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_ROTATION_MAX_BACKUPS" env-default:"3"`
	MaxAge     int    `yaml:"max_age" env:"LOG_ROTATION_MAX_AGE" env-default:"28"`
}

type Database struct {
	Host      string    `yaml:"host" env:"DATABASE_HOST" env-default:"localhost"`
	Port      uint16    `yaml:"port" env:"DATABASE_PORT" env-default:"5432"`
	User      string    `yaml:"user" env:"DATABASE_USER" env-default:"postgres"`
	Password  string    `yaml:"password" env:"DATABASE_PASSWORD"`
	Name      string    `yaml:"name" env:"DATABASE_NAME" env-default:"messaging"`
	SSLMode   string    `yaml:"ssl_mode" env:"DATABASE_SSL_MODE" env-default:"disable"`
	MaxConns  int32     `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"10"`
	MinConns  int32     `yaml:"min_conns" env:"DATABASE_MIN_CONNS" env-default:"1"`
	Migration Migration `yaml:"migration"`
}

type Migration struct {
	Path      string `yaml:"path" env:"DATABASE_MIGRATION_PATH" env-default:"migrations"`
	AutoApply bool   `yaml:"auto_apply" env:"DATABASE_MIGRATION_AUTO_APPLY"`
}

type Redis struct {
	Enable   bool   `yaml:"enable" env:"REDIS_ENABLE"`
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     uint16 `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type HTTPServer struct {
	Host      string    `yaml:"host" env:"HTTP_SERVER_HOST" env-default:"0.0.0.0"`
	Port      uint16    `yaml:"port" env:"HTTP_SERVER_PORT" env-default:"8080"`
	BasePath  string    `yaml:"base_path" env:"HTTP_SERVER_BASE_PATH" env-default:"/api"`
	Timeout   Timeout   `yaml:"timeout"`
	CORS      CORS      `yaml:"cors"`
	WebSocket WebSocket `yaml:"websocket"`
}

type Timeout struct {
	Request time.Duration `yaml:"request" env:"HTTP_SERVER_TIMEOUT_REQUEST" env-default:"10s"`
	Read    time.Duration `yaml:"read" env:"HTTP_SERVER_TIMEOUT_READ" env-default:"10s"`
	Write   time.Duration `yaml:"write" env:"HTTP_SERVER_TIMEOUT_WRITE" env-default:"10s"`
	Idle    time.Duration `yaml:"idle" env:"HTTP_SERVER_TIMEOUT_IDLE" env-default:"60s"`
}

type CORS struct {
	Enabled          bool          `yaml:"enabled" env:"HTTP_SERVER_CORS_ENABLED"`
	AllowAllOrigins  bool          `yaml:"allow_all_origins" env:"HTTP_SERVER_CORS_ALLOW_ALL_ORIGINS"`
	AllowOrigins     []string      `yaml:"allow_origins" env:"HTTP_SERVER_CORS_ALLOW_ORIGINS" env-separator:","`
	AllowMethods     []string      `yaml:"allow_methods" env:"HTTP_SERVER_CORS_ALLOW_METHODS" env-separator:","`
	AllowHeaders     []string      `yaml:"allow_headers" env:"HTTP_SERVER_CORS_ALLOW_HEADERS" env-separator:","`
	ExposeHeaders    []string      `yaml:"expose_headers" env:"HTTP_SERVER_CORS_EXPOSE_HEADERS" env-separator:","`
	AllowCredentials bool          `yaml:"allow_credentials" env:"HTTP_SERVER_CORS_ALLOW_CREDENTIALS"`
	MaxAge           time.Duration `yaml:"max_age" env:"HTTP_SERVER_CORS_MAX_AGE" env-default:"12h"`
	AllowWebSockets  bool          `yaml:"allow_websockets" env:"HTTP_SERVER_CORS_ALLOW_WEBSOCKETS"`
	AllowFiles       bool          `yaml:"allow_files" env:"HTTP_SERVER_CORS_ALLOW_FILES"`
}

type WebSocket struct {
	SendBuffer     int           `yaml:"send_buffer" env:"HTTP_SERVER_WEBSOCKET_SEND_BUFFER" env-default:"64"`
	ReadLimit      int64         `yaml:"read_limit" env:"HTTP_SERVER_WEBSOCKET_READ_LIMIT" env-default:"65536"`
	PingInterval   time.Duration `yaml:"ping_interval" env:"HTTP_SERVER_WEBSOCKET_PING_INTERVAL" env-default:"30s"`
	PongWait       time.Duration `yaml:"pong_wait" env:"HTTP_SERVER_WEBSOCKET_PONG_WAIT" env-default:"60s"`
	WriteWait      time.Duration `yaml:"write_wait" env:"HTTP_SERVER_WEBSOCKET_WRITE_WAIT" env-default:"10s"`
	FrameTimeout   time.Duration `yaml:"frame_timeout" env:"HTTP_SERVER_WEBSOCKET_FRAME_TIMEOUT" env-default:"10s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_SERVER_WEBSOCKET_ALLOWED_ORIGINS" env-separator:","`
}

type Key struct {
	PublicKey string `yaml:"public" env:"KEY_PUBLIC" env-default:"ecdsa_public.pem"`
}

type Outbox struct {
	PollInterval   time.Duration `yaml:"poll_interval" env:"OUTBOX_POLL_INTERVAL" env-default:"1500ms"`
	BatchSize      int           `yaml:"batch_size" env:"OUTBOX_BATCH_SIZE" env-default:"50"`
	WorkerCount    int           `yaml:"worker_count" env:"OUTBOX_WORKER_COUNT" env-default:"4"`
	HandlerTimeout time.Duration `yaml:"handler_timeout" env:"OUTBOX_HANDLER_TIMEOUT" env-default:"10s"`
	BackoffUnit    time.Duration `yaml:"backoff_unit" env:"OUTBOX_BACKOFF_UNIT" env-default:"2s"`
	BackoffCap     time.Duration `yaml:"backoff_cap" env:"OUTBOX_BACKOFF_CAP" env-default:"60s"`
	ClaimLease     time.Duration `yaml:"claim_lease" env:"OUTBOX_CLAIM_LEASE" env-default:"30s"`
}

type Chat struct {
	MaxMessageLength     int           `yaml:"max_message_length" env:"CHAT_MAX_MESSAGE_LENGTH" env-default:"4000"`
	ParticipantsCacheTTL time.Duration `yaml:"participants_cache_ttl" env:"CHAT_PARTICIPANTS_CACHE_TTL" env-default:"10m"`
}

func MustLoadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	return cfg
}

// LoadConfig reads the yaml file given by -config or CONFIG_PATH, or only the environment when neither is set.
func LoadConfig() (*Config, error) {
	return load(fetchConfigPath())
}

func load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustPrintConfig(cfg *Config) {
	if err := PrintConfig(cfg); err != nil {
		panic(err)
	}
}

func PrintConfig(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	println(string(data))

	return nil
}

func fetchConfigPath() string {
	var result string

	flag.StringVar(&result, "config", "", "Path to config file")
	flag.Parse()

	if result == "" {
		result = os.Getenv("CONFIG_PATH")
	}

	return result
}
