package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Meta            Meta            `mapstructure:",squash"`
	Engine          Engine          `mapstructure:",squash"`
	RawCache        RawCache        `mapstructure:",squash"`
	OverviewSync    OverviewSync    `mapstructure:",squash"`
	SessionEviction SessionEviction `mapstructure:",squash"`
	ClientsFile     string          `mapstructure:"clients_file"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AccessToken    string        `mapstructure:"meta_access_token"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
	MaxRetries     int           `mapstructure:"meta_max_retries"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Engine agrupa os parâmetros do agregador de métricas
type Engine struct {
	MaxConcurrency      int           `mapstructure:"engine_max_concurrency"`
	AdInsightsCeiling   int           `mapstructure:"engine_ad_insights_ceiling"`
	ResultMarkers       []string      `mapstructure:"engine_result_markers"`
	VisibilityThreshold float64       `mapstructure:"engine_visibility_threshold"`
	SurfaceSettleDelay  time.Duration `mapstructure:"engine_surface_settle_delay"`
	SurfaceMaxRetries   int           `mapstructure:"engine_surface_max_retries"`
}

type RawCache struct {
	Enabled       bool   `mapstructure:"raw_cache_enabled"`
	LookbackDays  int    `mapstructure:"raw_cache_lookback_days"`
	RetentionDays int    `mapstructure:"raw_cache_retention_days"`
	PurgeCron     string `mapstructure:"raw_cache_purge_cron"`
}

type OverviewSync struct {
	CronSchedule string `mapstructure:"overview_sync_cron"`
	Preset       string `mapstructure:"overview_sync_preset"`
	Enabled      bool   `mapstructure:"overview_sync_enabled"`
}

type SessionEviction struct {
	IdleTimeout  time.Duration `mapstructure:"session_idle_timeout"`
	CronSchedule string        `mapstructure:"session_eviction_cron"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dashboard?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_REQUEST_TIMEOUT", "45s")
	viper.SetDefault("META_MAX_RETRIES", 3)

	// Defaults do agregador
	viper.SetDefault("ENGINE_MAX_CONCURRENCY", 5)          // requisições simultâneas à Graph API
	viper.SetDefault("ENGINE_AD_INSIGHTS_CEILING", 12)     // anúncios com insights por campanha
	viper.SetDefault("ENGINE_RESULT_MARKERS", []string{})  // vazio usa a lista padrão do normalizador
	viper.SetDefault("ENGINE_VISIBILITY_THRESHOLD", 0.10)  // 10% do contêiner visível
	viper.SetDefault("ENGINE_SURFACE_SETTLE_DELAY", "100ms")
	viper.SetDefault("ENGINE_SURFACE_MAX_RETRIES", 10)

	viper.SetDefault("CLIENTS_FILE", "clients.json")

	viper.SetDefault("RAW_CACHE_ENABLED", false)
	viper.SetDefault("RAW_CACHE_LOOKBACK_DAYS", 90)
	viper.SetDefault("RAW_CACHE_RETENTION_DAYS", 7)
	viper.SetDefault("RAW_CACHE_PURGE_CRON", "0 4 * * *") // Todos os dias às 4h da manhã

	viper.SetDefault("OVERVIEW_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("OVERVIEW_SYNC_PRESET", "today")
	viper.SetDefault("OVERVIEW_SYNC_ENABLED", false)

	viper.SetDefault("SESSION_IDLE_TIMEOUT", "30m")
	viper.SetDefault("SESSION_EVICTION_CRON", "*/5 * * * *")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
