package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/radekwlsk/go-salesman/salesman/salesmanservice"
)

const Prefix = "SALESMAN"

var (
	ErrBadLogFormat = errors.New("log format must be logfmt or json")
	ErrBadLogLevel  = errors.New("log level must be debug, info, warn or error")
	ErrMaxPoints    = errors.New("max points must be at least 2")
	ErrTraceLimit   = errors.New("trace limit must not be negative")
)

// Config is read from SALESMAN_* environment variables.
type Config struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MaxPoints   int    `envconfig:"MAX_POINTS" default:"12"`
	TraceLimit  int    `envconfig:"TRACE_LIMIT" default:"1000"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"logfmt"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsPath string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// Load reads the dotenv files that exist, then the environment. Variables
// already present in the environment win over dotenv values.
func Load(dotenv ...string) (Config, error) {
	for _, f := range dotenv {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.LogFormat != "logfmt" && c.LogFormat != "json":
		return ErrBadLogFormat
	case c.MaxPoints < 2:
		return ErrMaxPoints
	case c.TraceLimit < 0:
		return ErrTraceLimit
	}
	if _, err := levelOption(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (c Config) ServiceOptions() salesmanservice.Options {
	return salesmanservice.Options{
		MaxPoints:  c.MaxPoints,
		TraceLimit: c.TraceLimit,
	}
}

// Logger builds the process logger writing to w.
func (c Config) Logger(w io.Writer) log.Logger {
	var logger log.Logger
	{
		if c.LogFormat == "json" {
			logger = log.NewJSONLogger(log.NewSyncWriter(w))
		} else {
			logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
		}
		allow, err := levelOption(c.LogLevel)
		if err != nil {
			allow = level.AllowInfo()
		}
		logger = level.NewFilter(logger, allow)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}
	return logger
}

func levelOption(l string) (level.Option, error) {
	switch l {
	case "debug":
		return level.AllowDebug(), nil
	case "info", "":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, ErrBadLogLevel
}
