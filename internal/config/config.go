package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Media       MediaConfig       `yaml:"media"`
	Session     SessionConfig     `yaml:"session"`
	YtDlp       YtDlpConfig       `yaml:"ytdlp"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
	Synthesizer SynthesizerConfig `yaml:"synthesizer"`
	Templates   TemplatesConfig   `yaml:"templates"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	DiagAddr string `yaml:"diag_addr"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// MediaConfig.Root holds temporary audio files; nothing under it outlives a request.
type MediaConfig struct {
	Root string `yaml:"root"`
}

type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
	Secure     bool          `yaml:"secure"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type YtDlpConfig struct {
	BinaryPath   string `yaml:"binary_path"`
	Format       string `yaml:"format"`
	AudioFormat  string `yaml:"audio_format"`
	AudioQuality string `yaml:"audio_quality"`
}

type TranscriberConfig struct {
	Provider   string           `yaml:"provider"`
	AssemblyAI AssemblyAIConfig `yaml:"assemblyai"`
	Whisper    WhisperConfig    `yaml:"whisper"`
}

type AssemblyAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type WhisperConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type SynthesizerConfig struct {
	Provider    string       `yaml:"provider"`
	Model       string       `yaml:"model"`
	MaxTokens   int          `yaml:"max_tokens"`
	Temperature *float32     `yaml:"temperature"`
	Gemini      GeminiConfig `yaml:"gemini"`
	OpenAI      OpenAIConfig `yaml:"openai"`
	Ollama      OllamaConfig `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type OllamaConfig struct {
	Host string `yaml:"host"`
}

// TemplatesConfig.Dir overrides the embedded page templates; Watch reloads them on change.
type TemplatesConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

const DefaultMaxTokens = 1000

// DefaultTemperature applies only when synthesizer.temperature is absent; an
// explicit 0 is kept.
const DefaultTemperature float32 = 0.7

// audioFormats are the yt-dlp --audio-format values whose output file
// extension equals the format name.
var audioFormats = map[string]struct{}{
	"mp3": {}, "m4a": {}, "wav": {}, "flac": {}, "opus": {},
}

const (
	ProviderAssemblyAI = "assemblyai"
	ProviderWhisper    = "whisper"
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOllama     = "ollama"
)

// Load reads the YAML file at path, applies environment overrides (including
// any .env file in the working directory) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{"BLOGFLOW_ADDR", &c.Server.Addr},
		{"BLOGFLOW_DATABASE", &c.Database.Path},
		{"BLOGFLOW_MEDIA_ROOT", &c.Media.Root},
		{"BLOGFLOW_SESSION_SECRET", &c.Session.Secret},
		{"ASSEMBLYAI_API_KEY", &c.Transcriber.AssemblyAI.APIKey},
		{"OPENAI_API_KEY", &c.Transcriber.Whisper.APIKey},
		{"OPENAI_API_KEY", &c.Synthesizer.OpenAI.APIKey},
		{"GEMINI_API_KEY", &c.Synthesizer.Gemini.APIKey},
		{"OLLAMA_HOST", &c.Synthesizer.Ollama.Host},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
}

// Validate checks required fields and fills defaults for the rest.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret is required")
	}
	if len(c.Session.Secret) < 16 {
		return fmt.Errorf("session.secret must be at least 16 characters")
	}
	if c.Media.Root == "" {
		return fmt.Errorf("media.root is required")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/blogflow.sqlite3"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "blogflow_session"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 14 * 24 * time.Hour
	}
	if c.YtDlp.BinaryPath == "" {
		c.YtDlp.BinaryPath = "yt-dlp"
	}
	if c.YtDlp.Format == "" {
		c.YtDlp.Format = "bestaudio/best"
	}
	if c.YtDlp.AudioFormat == "" {
		c.YtDlp.AudioFormat = "mp3"
	}
	if _, ok := audioFormats[c.YtDlp.AudioFormat]; !ok {
		return fmt.Errorf("ytdlp.audio_format %q is not supported (mp3, m4a, wav, flac, opus)", c.YtDlp.AudioFormat)
	}
	if c.YtDlp.AudioQuality == "" {
		c.YtDlp.AudioQuality = "192K"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}

	return c.validateProviders()
}

func (c *Config) validateProviders() error {
	if c.Transcriber.Provider == "" {
		c.Transcriber.Provider = ProviderAssemblyAI
	}
	switch c.Transcriber.Provider {
	case ProviderAssemblyAI:
		if c.Transcriber.AssemblyAI.APIKey == "" {
			return fmt.Errorf("transcriber.assemblyai.api_key is required")
		}
	case ProviderWhisper:
		if c.Transcriber.Whisper.APIKey == "" {
			return fmt.Errorf("transcriber.whisper.api_key is required")
		}
		if c.Transcriber.Whisper.Model == "" {
			c.Transcriber.Whisper.Model = "whisper-1"
		}
	default:
		return fmt.Errorf("unknown transcriber.provider %q", c.Transcriber.Provider)
	}

	if c.Synthesizer.Provider == "" {
		c.Synthesizer.Provider = ProviderGemini
	}
	if c.Synthesizer.MaxTokens == 0 {
		c.Synthesizer.MaxTokens = DefaultMaxTokens
	}
	if c.Synthesizer.Temperature == nil {
		t := DefaultTemperature
		c.Synthesizer.Temperature = &t
	}
	if t := *c.Synthesizer.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("synthesizer.temperature must be between 0 and 2")
	}
	switch c.Synthesizer.Provider {
	case ProviderGemini:
		if c.Synthesizer.Gemini.APIKey == "" {
			return fmt.Errorf("synthesizer.gemini.api_key is required")
		}
		if c.Synthesizer.Model == "" {
			c.Synthesizer.Model = "gemini-2.5-flash"
		}
	case ProviderOpenAI:
		if c.Synthesizer.OpenAI.APIKey == "" {
			return fmt.Errorf("synthesizer.openai.api_key is required")
		}
		if c.Synthesizer.Model == "" {
			c.Synthesizer.Model = "gpt-4o-mini"
		}
	case ProviderOllama:
		if c.Synthesizer.Ollama.Host == "" {
			c.Synthesizer.Ollama.Host = "http://127.0.0.1:11434"
		}
		if c.Synthesizer.Model == "" {
			return fmt.Errorf("synthesizer.model is required for ollama")
		}
	default:
		return fmt.Errorf("unknown synthesizer.provider %q", c.Synthesizer.Provider)
	}

	return nil
}
