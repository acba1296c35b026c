package config

import (
	"os"
	"path"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr      string    `yaml:"addr" env:"KVBOARD_ADDR"`
	Log       Log       `yaml:"log"`
	Cors      Cors      `yaml:"cors"`
	Store     Store     `yaml:"store"`
	Board     Board     `yaml:"board"`
	RateLimit RateLimit `yaml:"ratelimit"`
}

type Log struct {
	Level string `yaml:"level" env:"KVBOARD_LOG_LEVEL"`
	JSON  bool   `yaml:"json" env:"KVBOARD_LOG_JSON"`
}

type Cors struct {
	Origin string `yaml:"origin" env:"KVBOARD_CORS_ORIGIN"`
}

type Store struct {
	ThreadsKey      string        `yaml:"threads_key" env:"KVBOARD_THREADS_KEY"`
	RepliesKey      string        `yaml:"replies_key" env:"KVBOARD_REPLIES_KEY"`
	OpTimeout       time.Duration `yaml:"op_timeout" env:"KVBOARD_STORE_OP_TIMEOUT"`
	SerializeWrites bool          `yaml:"serialize_writes" env:"KVBOARD_SERIALIZE_WRITES"`
	LockTTL         time.Duration `yaml:"lock_ttl"`
}

type Board struct {
	DefaultUser   string `yaml:"default_user"`
	IdStrategy    string `yaml:"id_strategy" env:"KVBOARD_ID_STRATEGY"` // "timestamp" or "uuid"
	SanitizeHTML  bool   `yaml:"sanitize_html"`
	MaxTitleLen   int    `yaml:"max_title_len"`
	MaxContentLen int    `yaml:"max_content_len"`
}

type RateLimit struct {
	CreateRPS   float64 `yaml:"create_rps"` // 0 disables the limiter
	CreateBurst float64 `yaml:"create_burst"`
}

type Private struct {
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
}

func (s *Config) RedisURL() string {
	return s.Private.RedisURL
}

// Defaults is what every unset field falls back to.
func Defaults() Public {
	return Public{
		Addr: ":8080",
		Log:  Log{Level: "info"},
		Cors: Cors{Origin: "*"},
		Store: Store{
			ThreadsKey: "threads",
			RepliesKey: "replies",
			OpTimeout:  2 * time.Second,
			LockTTL:    5 * time.Second,
		},
		Board: Board{
			DefaultUser:   "Anonymous",
			IdStrategy:    "timestamp",
			MaxTitleLen:   200,
			MaxContentLen: 10_000,
		},
		RateLimit: RateLimit{CreateRPS: 1, CreateBurst: 5},
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder on top of
// Defaults, then applies environment overrides.
func MustLoad(configFolder string) *Config {
	public := Defaults()
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	if err := env.Parse(cfg); err != nil {
		panic("can't parse environment overrides: " + err.Error())
	}
	return cfg
}
