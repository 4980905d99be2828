package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Redis    RedisConfig
	Sheets   SheetsConfig
	Telegram TelegramConfig
	Quiz     QuizConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

// RedisConfig holds the session store connection. An empty Address keeps
// sessions in process memory.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SheetsConfig struct {
	BaseURL       string
	SheetID       string
	PricesSheet   string
	ClinicsSheet  string
	ProgramsSheet string
	Timeout       time.Duration

	// ReloadToken is the bearer token for POST /api/catalog/reload; empty
	// disables the route.
	ReloadToken string
}

type TelegramConfig struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Timeout  time.Duration
}

type QuizConfig struct {
	SessionTTL    time.Duration
	ResetDelay    time.Duration
	SubmitLockTTL time.Duration
	LeadSource    string
	TimeZone      string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.idle_timeout", 20)
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("sheets.base_url", "https://docs.google.com/spreadsheets/d")
	v.SetDefault("sheets.sheet_id", "1nZHWVu9pILQEFtZezgakZglzOlFF3a0G5VczH9o4TSE")
	v.SetDefault("sheets.prices_sheet", "API_Export")
	v.SetDefault("sheets.clinics_sheet", "Клініка_Дані")
	v.SetDefault("sheets.programs_sheet", "Програми_Описи")
	v.SetDefault("sheets.timeout", 15)
	v.SetDefault("sheets.reload_token", "")

	v.SetDefault("telegram.base_url", "https://api.telegram.org")
	v.SetDefault("telegram.chat_id", "248929032")
	v.SetDefault("telegram.timeout", 10)

	v.SetDefault("quiz.session_ttl", 7200)
	v.SetDefault("quiz.reset_delay", 3)
	v.SetDefault("quiz.submit_lock_ttl", 30)
	v.SetDefault("quiz.lead_source", "roadmap.check-up.in.ua")
	v.SetDefault("quiz.time_zone", "Europe/Kyiv")
}

// LoadConfig reads .env, an optional config.yaml and the environment, in
// that order of increasing precedence.
func LoadConfig() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			IdleTimeout:  time.Duration(v.GetInt("server.idle_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Sheets: SheetsConfig{
			BaseURL:       strings.TrimRight(v.GetString("sheets.base_url"), "/"),
			SheetID:       v.GetString("sheets.sheet_id"),
			PricesSheet:   v.GetString("sheets.prices_sheet"),
			ClinicsSheet:  v.GetString("sheets.clinics_sheet"),
			ProgramsSheet: v.GetString("sheets.programs_sheet"),
			Timeout:       time.Duration(v.GetInt("sheets.timeout")) * time.Second,
			ReloadToken:   v.GetString("sheets.reload_token"),
		},
		Telegram: TelegramConfig{
			BaseURL:  strings.TrimRight(v.GetString("telegram.base_url"), "/"),
			BotToken: v.GetString("telegram.bot_token"),
			ChatID:   v.GetString("telegram.chat_id"),
			Timeout:  time.Duration(v.GetInt("telegram.timeout")) * time.Second,
		},
		Quiz: QuizConfig{
			SessionTTL:    time.Duration(v.GetInt("quiz.session_ttl")) * time.Second,
			ResetDelay:    time.Duration(v.GetInt("quiz.reset_delay")) * time.Second,
			SubmitLockTTL: time.Duration(v.GetInt("quiz.submit_lock_ttl")) * time.Second,
			LeadSource:    v.GetString("quiz.lead_source"),
			TimeZone:      v.GetString("quiz.time_zone"),
		},
	}
}

func loadDotEnv() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// SheetURL builds the gviz CSV export URL for a named sheet tab.
func (s SheetsConfig) SheetURL(sheet string) string {
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s", s.BaseURL, s.SheetID, url.QueryEscape(sheet))
}

func (s SheetsConfig) PricesURL() string   { return s.SheetURL(s.PricesSheet) }
func (s SheetsConfig) ClinicsURL() string  { return s.SheetURL(s.ClinicsSheet) }
func (s SheetsConfig) ProgramsURL() string { return s.SheetURL(s.ProgramsSheet) }

// Location resolves the configured time zone, falling back to UTC.
func (q QuizConfig) Location() *time.Location {
	if q.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(q.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
