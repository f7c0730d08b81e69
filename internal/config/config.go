// Package config loads and validates summarizer configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Env var names for the settings the summarize pipeline refuses to run without.
const (
	EnvSupabaseDSN = "SUMMARIZER_SUPABASE_DSN"
	EnvMongoURI    = "SUMMARIZER_MONGO_URI"
	EnvLLMAPIKey   = "SUMMARIZER_LLM_API_KEY"
)

// Summarizer and translator modes.
const (
	ModeStatic     = "static"
	ModeDictionary = "dictionary"
	ModeLLM        = "llm"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Extract    ExtractConfig    `mapstructure:"extract"`
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	Translator TranslatorConfig `mapstructure:"translator"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Supabase   SupabaseConfig   `mapstructure:"supabase"`
	Mongo      MongoConfig      `mapstructure:"mongo"`
	Snapshot   SnapshotConfig   `mapstructure:"snapshot"`
	PubSub     PubSubConfig     `mapstructure:"pubsub"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// FetchConfig controls how blog pages are retrieved.
type FetchConfig struct {
	Mode      string        `mapstructure:"mode"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	// RPS caps fetches per second to one host; zero disables the limiter.
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// ExtractConfig selects the HTML text extractor.
type ExtractConfig struct {
	Mode string `mapstructure:"mode"`
}

// SummarizerConfig selects the summary generator.
type SummarizerConfig struct {
	Mode string `mapstructure:"mode"`
}

// TranslatorConfig selects the Urdu translator.
type TranslatorConfig struct {
	Mode string `mapstructure:"mode"`
}

// LLMConfig points at an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SupabaseConfig controls the Postgres connection backing summary records.
type SupabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	Table           string        `mapstructure:"table"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// MongoConfig controls the document store holding full blog text.
type MongoConfig struct {
	URI                    string        `mapstructure:"uri"`
	Database               string        `mapstructure:"database"`
	Collection             string        `mapstructure:"collection"`
	MaxPoolSize            uint64        `mapstructure:"max_pool_size"`
	ServerSelectionTimeout time.Duration `mapstructure:"server_selection_timeout"`
	SocketTimeout          time.Duration `mapstructure:"socket_timeout"`
}

// SnapshotConfig sets where raw HTML snapshots are kept.
type SnapshotConfig struct {
	Backend     string `mapstructure:"backend"`
	Bucket      string `mapstructure:"bucket"`
	BaseDir     string `mapstructure:"base_dir"`
	Prefix      string `mapstructure:"prefix"`
	ContentType string `mapstructure:"content_type"`
}

// PubSubConfig holds metadata for summary notifications.
type PubSubConfig struct {
	// Backend is none, memory or gcp. Empty picks gcp when ProjectID is set
	// and none otherwise.
	Backend   string `mapstructure:"backend"`
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// TelemetryConfig names the service in traces.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SUMMARIZER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return Config{}, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", "300s")
	v.SetDefault("logging.development", true)
	v.SetDefault("fetch.mode", "http")
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("fetch.rps", 0)
	v.SetDefault("fetch.burst", 1)
	v.SetDefault("extract.mode", "regex")
	v.SetDefault("summarizer.mode", ModeStatic)
	v.SetDefault("translator.mode", ModeDictionary)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://generativelanguage.googleapis.com/v1beta/openai/")
	v.SetDefault("llm.model", "gemini-1.5-pro-latest")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("supabase.dsn", "")
	v.SetDefault("supabase.table", "summaries")
	v.SetDefault("supabase.max_conns", 4)
	v.SetDefault("supabase.max_conn_lifetime", "30m")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "blog_summarizer")
	v.SetDefault("mongo.collection", "blog_posts")
	v.SetDefault("mongo.max_pool_size", 10)
	v.SetDefault("mongo.server_selection_timeout", "10s")
	v.SetDefault("mongo.socket_timeout", "45s")
	v.SetDefault("snapshot.backend", "none")
	v.SetDefault("snapshot.prefix", "snapshots")
	v.SetDefault("snapshot.content_type", "text/html; charset=utf-8")
	v.SetDefault("pubsub.backend", "")
	v.SetDefault("pubsub.project_id", "")
	v.SetDefault("pubsub.topic_name", "blog-summaries")
	v.SetDefault("telemetry.service_name", "blog-summarizer")
}

// bindLegacyEnv keeps the variable names of earlier deployments working.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"supabase.dsn": {EnvSupabaseDSN, "SUPABASE_DB_URL"},
		"mongo.uri":    {EnvMongoURI, "MONGODB_URI"},
		"llm.api_key":  {EnvLLMAPIKey, "GEMINI_API_KEY"},
		"server.port":  {"SUMMARIZER_SERVER_PORT", "PORT"},
	}
	for key, names := range bindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

// DefaultUserAgent mimics a desktop Chrome browser; some blogs refuse bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Validate enforces structural values. Secrets are checked per request by MissingEnv.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be > 0")
	}
	if c.Fetch.RPS < 0 {
		return fmt.Errorf("fetch.rps must be >= 0")
	}
	switch c.Fetch.Mode {
	case "http", "headless":
	default:
		return fmt.Errorf("fetch.mode must be one of http, headless; got %q", c.Fetch.Mode)
	}
	switch c.Extract.Mode {
	case "regex", "dom":
	default:
		return fmt.Errorf("extract.mode must be one of regex, dom; got %q", c.Extract.Mode)
	}
	if c.Summarizer.Mode != ModeStatic && c.Summarizer.Mode != ModeLLM {
		return fmt.Errorf("summarizer.mode must be one of static, llm; got %q", c.Summarizer.Mode)
	}
	if c.Translator.Mode != ModeDictionary && c.Translator.Mode != ModeLLM {
		return fmt.Errorf("translator.mode must be one of dictionary, llm; got %q", c.Translator.Mode)
	}
	switch c.Snapshot.Backend {
	case "none", "memory":
	case "local":
		if c.Snapshot.BaseDir == "" {
			return fmt.Errorf("snapshot.base_dir must be set for the local backend")
		}
	case "gcs":
		if c.Snapshot.Bucket == "" {
			return fmt.Errorf("snapshot.bucket must be set for the gcs backend")
		}
	default:
		return fmt.Errorf("snapshot.backend must be one of none, memory, local, gcs; got %q", c.Snapshot.Backend)
	}
	switch c.PubSub.Backend {
	case "", "none", "memory":
	case "gcp":
		if c.PubSub.ProjectID == "" {
			return fmt.Errorf("pubsub.project_id must be set for the gcp backend")
		}
	default:
		return fmt.Errorf("pubsub.backend must be one of none, memory, gcp; got %q", c.PubSub.Backend)
	}
	return nil
}

// UsesLLM reports whether any pipeline stage calls the language model.
func (c Config) UsesLLM() bool {
	return c.Summarizer.Mode == ModeLLM || c.Translator.Mode == ModeLLM
}

// MissingEnv lists the env var names of required settings that are empty, in a stable order.
func (c Config) MissingEnv() []string {
	var missing []string
	if strings.TrimSpace(c.Supabase.DSN) == "" {
		missing = append(missing, EnvSupabaseDSN)
	}
	if strings.TrimSpace(c.Mongo.URI) == "" {
		missing = append(missing, EnvMongoURI)
	}
	if c.UsesLLM() && strings.TrimSpace(c.LLM.APIKey) == "" {
		missing = append(missing, EnvLLMAPIKey)
	}
	return missing
}
