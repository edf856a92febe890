// Пакет config. Конфигурация из флагов и переменных окружения
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	clientConfig "github.com/iurnickita/voterguide/internal/voterguide/client/config"
	devicestoreConfig "github.com/iurnickita/voterguide/internal/voterguide/devicestore/config"
	loggerConfig "github.com/iurnickita/voterguide/internal/voterguide/logger/config"
	stubapiConfig "github.com/iurnickita/voterguide/internal/voterguide/stubapi/config"
	repositoryConfig "github.com/iurnickita/voterguide/internal/voterguide/stubapi/repository/config"
)

// Command - вызов метода из командной строки
type Command struct {
	Endpoint string
	Params   Params
	Reset    bool
}

// Config - конфигурация клиента
type Config struct {
	Client      clientConfig.Config
	Logger      loggerConfig.Config
	DeviceStore devicestoreConfig.Config
	Command     Command
}

// ServerConfig - конфигурация тестового API
type ServerConfig struct {
	StubAPI    stubapiConfig.Config
	Repository repositoryConfig.Config
	Logger     loggerConfig.Config
}

// GetConfig разбирает флаги клиента. Переменные окружения имеют приоритет
func GetConfig(args []string) (Config, error) {
	cfg := Config{Command: Command{Params: Params{}}}

	fs := flag.NewFlagSet("voterguide", flag.ContinueOnError)
	fs.StringVar(&cfg.Client.BaseURL, "a", clientConfig.DefaultBaseURL, "API base URL")
	fs.StringVar(&cfg.Client.APIKey, "k", "", "API key")
	fs.DurationVar(&cfg.Client.Timeout, "t", clientConfig.DefaultTimeout, "HTTP timeout")
	fs.StringVar(&cfg.Logger.LogLevel, "l", loggerConfig.DefaultLogLevel, "log level")
	fs.StringVar(&cfg.DeviceStore.Filename, "f", devicestoreConfig.DefaultFilename, "voter device id file, empty to keep in memory")
	fs.StringVar(&cfg.Command.Endpoint, "e", "voterCount", "endpoint name")
	fs.Var(cfg.Command.Params, "p", "endpoint parameter key=value, repeatable")
	fs.BoolVar(&cfg.Command.Reset, "reset", false, "forget the stored voter device id")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if env := os.Getenv("API_BASE_URL"); env != "" {
		cfg.Client.BaseURL = env
	}
	if env := os.Getenv("API_KEY"); env != "" {
		cfg.Client.APIKey = env
	}
	if env := os.Getenv("API_TIMEOUT"); env != "" {
		d, err := time.ParseDuration(env)
		if err != nil {
			return Config{}, fmt.Errorf("API_TIMEOUT: %w", err)
		}
		cfg.Client.Timeout = d
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		cfg.Logger.LogLevel = env
	}
	if env := os.Getenv("DEVICE_ID_FILE"); env != "" {
		cfg.DeviceStore.Filename = env
	}

	cfg.DeviceStore.StoreType = devicestoreConfig.StoreTypeVar
	if cfg.DeviceStore.Filename != "" {
		cfg.DeviceStore.StoreType = devicestoreConfig.StoreTypeFile
	}
	if !strings.HasPrefix(cfg.Client.BaseURL, "http://") && !strings.HasPrefix(cfg.Client.BaseURL, "https://") {
		cfg.Client.BaseURL = "http://" + cfg.Client.BaseURL
	}

	return cfg, nil
}

// GetServerConfig разбирает флаги тестового API
func GetServerConfig(args []string) (ServerConfig, error) {
	var cfg ServerConfig

	fs := flag.NewFlagSet("stubapi", flag.ContinueOnError)
	fs.StringVar(&cfg.StubAPI.ServerAddr, "a", stubapiConfig.DefaultServerAddr, "address of HTTP server")
	fs.StringVar(&cfg.StubAPI.APIKey, "k", "", "required API key, empty to accept any")
	fs.StringVar(&cfg.StubAPI.TokenSecret, "s", stubapiConfig.DefaultTokenSecret, "voter device id signing secret")
	fs.StringVar(&cfg.Repository.DBDsn, "d", "", "database DSN, empty to keep data in memory")
	fs.StringVar(&cfg.Logger.LogLevel, "l", loggerConfig.DefaultLogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}

	if env := os.Getenv("SERVER_ADDRESS"); env != "" {
		cfg.StubAPI.ServerAddr = env
	}
	if env := os.Getenv("API_KEY"); env != "" {
		cfg.StubAPI.APIKey = env
	}
	if env := os.Getenv("TOKEN_SECRET"); env != "" {
		cfg.StubAPI.TokenSecret = env
	}
	if env := os.Getenv("DATABASE_DSN"); env != "" {
		cfg.Repository.DBDsn = env
	}
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		cfg.Logger.LogLevel = env
	}

	cfg.StubAPI.ServerAddr = strings.TrimPrefix(cfg.StubAPI.ServerAddr, "http://")
	cfg.Repository.StoreType = repositoryConfig.StoreTypeVar
	if cfg.Repository.DBDsn != "" {
		cfg.Repository.StoreType = repositoryConfig.StoreTypeDB
	}

	return cfg, nil
}

// Params - флаг вида key=value, может повторяться
type Params map[string]string

var errBadParam = errors.New("parameter must look like key=value")

func (p Params) String() string {
	parts := make([]string, 0, len(p))
	for k, v := range p {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (p Params) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("%w: %q", errBadParam, s)
	}
	p[key] = value
	return nil
}
