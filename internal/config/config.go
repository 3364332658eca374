package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"8000"`
	SocketPort string `yaml:"socket-port" env-default:"8001"`
	Redis      Redis  `yaml:"redis"`
	Groq       Groq   `yaml:"groq"`
	AI         AI     `yaml:"ai"`
}

// Redis is optional: with an empty host the chat history falls back to the
// in-memory store.
type Redis struct {
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"6379"`
}

type Groq struct {
	APIKey  string `yaml:"api-key" env:"GROQ_API_KEY" env-default:""`
	BaseURL string `yaml:"base-url" env-default:"https://api.groq.com/openai/v1"`
	Model   string `yaml:"model" env-default:"llama3-70b-8192"`
}

type AI struct {
	UseMultiMoveCache  bool          `yaml:"use-multi-move-cache" env-default:"true"`
	CacheSize          int           `yaml:"cache-size" env-default:"5"`
	MinRequestInterval time.Duration `yaml:"min-request-interval" env-default:"1s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
