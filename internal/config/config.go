package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/leengari/relalg/internal/storage/filelist"
)

// EnvPrefix prefixes the environment variables read as flag defaults
const EnvPrefix = "RELALG_"

// Config holds the settings of the moviedb driver
type Config struct {
	LogLevel    string `validate:"oneof=debug info warn error"`
	SeqURL      string `validate:"omitempty,url"`
	Storage     string `validate:"oneof=memory file"`
	DataDir     string `validate:"required_if=Storage file"`
	PageRecords int    `validate:"gte=1"`
	Compress    bool
	HTTPAddr    string `validate:"omitempty,hostname_port"`
	Serve       bool
	REPL        bool
}

// Load parses args (without the program name). Every flag defaults to the
// RELALG_<NAME> environment variable when set, e.g. RELALG_LOG_LEVEL.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("moviedb", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.LogLevel, "log-level", GetEnvOrDefault("LOG_LEVEL", "info"), "log level: debug, info, warn or error")
	fs.StringVar(&cfg.SeqURL, "seq-url", GetEnvOrDefault("SEQ_URL", ""), "Seq ingestion URL, e.g. http://localhost:5341")
	fs.StringVar(&cfg.Storage, "storage", GetEnvOrDefault("STORAGE", "memory"), "tuple store: memory or file")
	fs.StringVar(&cfg.DataDir, "data-dir", GetEnvOrDefault("DATA_DIR", os.TempDir()), "directory for spill files")
	fs.IntVar(&cfg.PageRecords, "page-records", GetEnvOrDefaultInt("PAGE_RECORDS", filelist.DefaultPageRecords), "records per spilled page")
	fs.BoolVar(&cfg.Compress, "compress", GetEnvOrDefaultBool("COMPRESS", false), "zstd-compress spilled pages")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", GetEnvOrDefault("HTTP_ADDR", "localhost:8080"), "address of the HTTP export")
	fs.BoolVar(&cfg.Serve, "serve", GetEnvOrDefaultBool("SERVE", false), "serve the catalog over HTTP after the demo")
	fs.BoolVar(&cfg.REPL, "repl", GetEnvOrDefaultBool("REPL", false), "start an interactive shell after the demo")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// FileStore returns the spill settings for the file-backed store
func (c *Config) FileStore() filelist.Config {
	return filelist.Config{Dir: c.DataDir, PageRecords: c.PageRecords, Compress: c.Compress}
}

func GetEnvOrDefault(name, defaultVal string) string {
	if e := os.Getenv(EnvPrefix + name); e != "" {
		return e
	}
	return defaultVal
}

func GetEnvOrDefaultInt(name string, defaultVal int) int {
	e := os.Getenv(EnvPrefix + name)
	if e == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(e)
	if err != nil {
		slog.Warn("ignoring malformed integer environment variable", "name", EnvPrefix+name, "value", e)
		return defaultVal
	}
	return n
}

func GetEnvOrDefaultBool(name string, defaultVal bool) bool {
	e := os.Getenv(EnvPrefix + name)
	if e == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(e)
	if err != nil {
		slog.Warn("ignoring malformed boolean environment variable", "name", EnvPrefix+name, "value", e)
		return defaultVal
	}
	return b
}
