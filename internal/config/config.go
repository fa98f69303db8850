package config

import (
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Server Server `yaml:"server"`
}

type Server struct {
	ListenAddr    string `yaml:"listenAddr"`
	Storage       string `yaml:"storage"` // memory, postgres
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	AccessLog     bool   `yaml:"accessLog"`
}

func Default() Config {
	return Config{
		Server: Server{
			ListenAddr: ":8000",
			Storage:    StorageMemory,
		},
	}
}

// Load reads a yaml file on top of Default. An empty path yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to open config")
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	switch c.Server.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.Server.PostgresDsn == "" {
			return errors.New("server.postgresDsn is required for postgres storage")
		}
	default:
		return errors.Errorf("unknown storage %q", c.Server.Storage)
	}
	if c.Server.EnableTrace && c.Server.TraceEndpoint == "" {
		return errors.New("server.traceEndpoint is required when tracing is enabled")
	}
	return nil
}
