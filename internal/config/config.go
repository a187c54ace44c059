// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	App struct {
		Name           string        `mapstructure:"name"`
		PageSize       int           `mapstructure:"page_size"`        // 検索・一覧のデフォルトページサイズ
		StudySetLimit  int           `mapstructure:"study_set_limit"`  // 学習セッションの作業セット上限
		SessionIdleTTL time.Duration `mapstructure:"session_idle_ttl"` // 放置セッションの破棄までの時間
	} `mapstructure:"app"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		SecretKey      string        `mapstructure:"secret_key"`
		AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Generator struct {
		BaseURL   string        `mapstructure:"base_url"`
		APIKey    string        `mapstructure:"api_key"`
		Model     string        `mapstructure:"model"`
		MaxTokens int           `mapstructure:"max_tokens"`
		Timeout   time.Duration `mapstructure:"timeout"`
	} `mapstructure:"generator"`
	Mailer struct {
		Type string `mapstructure:"type"` // log / smtp / ses
		From string `mapstructure:"from"`
	} `mapstructure:"mailer"`
	SMTP     SMTPConfig `mapstructure:"smtp"`
	SES      SESConfig  `mapstructure:"ses"`
	Frontend struct {
		BaseURL string `mapstructure:"base_url"` // 認証メール内リンクの生成用
	} `mapstructure:"frontend"`
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	AuthType        string `mapstructure:"auth_type"` // iam_role / static_credentials
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	From            string `mapstructure:"from"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET")
	viper.BindEnv("generator.api_key", "GENERATOR_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using defaults and environment variables.")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	applyDefaults(&Cfg)

	log.Println("Config loaded successfully")
	return nil
}

// applyDefaults は未設定値にデフォルトを適用します
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.App.Name == "" {
		cfg.App.Name = AppName
	}
	if cfg.App.PageSize <= 0 {
		cfg.App.PageSize = DefaultPageSize
	}
	if cfg.App.StudySetLimit <= 0 {
		cfg.App.StudySetLimit = DefaultStudySetLimit
	}
	if cfg.App.SessionIdleTTL <= 0 {
		cfg.App.SessionIdleTTL = DefaultSessionIdleTTL
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		cfg.JWT.AccessTokenTTL = DefaultAccessTokenTTL
	}
	if !viper.IsSet("auth.enabled") {
		cfg.Auth.Enabled = true
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = DefaultGeneratorBaseURL
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = DefaultGeneratorModel
	}
	if cfg.Generator.MaxTokens <= 0 {
		cfg.Generator.MaxTokens = DefaultGeneratorMaxTokens
	}
	if cfg.Generator.Timeout <= 0 {
		cfg.Generator.Timeout = DefaultGeneratorTimeout
	}
	if cfg.Mailer.Type == "" {
		cfg.Mailer.Type = "log"
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
}
