package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is shared by the ledger client and the ledger server; each binary
// only reads the fields it needs.
type Config struct {
	RunAddress     string
	DatabaseURI    string
	LedgerAddress  string
	RequestTimeout time.Duration
	LogLevel       string
}

func defaults() Config {
	return Config{
		RunAddress:    "localhost:8080",
		LedgerAddress: "http://localhost:8080",
		LogLevel:      "info",
	}
}

// Parse reads the client configuration: defaults, then .env, then flags, then env.
func Parse() *Config {
	return parse("ledger", os.Args[1:], clientFlags)
}

// ParseServer reads the ledger server configuration the same way.
func ParseServer() *Config {
	return parse("ledger-server", os.Args[1:], serverFlags)
}

func parse(name string, args []string, flags func(*flag.FlagSet, *Config)) *Config {
	cfg := defaults()
	cfg.updateFromDotenv(".env")
	cfg.updateFromFlags(name, args, flags)
	cfg.updateFromEnv()
	return &cfg
}

// updateFromDotenv loads KEY=value pairs into the process environment;
// variables already set win.
func (cfg *Config) updateFromDotenv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("config: can't load `%s`, %v", path, err)
	}
}

func clientFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.LedgerAddress, "l", cfg.LedgerAddress, "Ledger service address.")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "Request timeout, 0 means none.")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "Log level.")
}

func serverFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "Server address.")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "Postgres DSN.")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "Log level.")
}

func (cfg *Config) updateFromFlags(name string, args []string, flags func(*flag.FlagSet, *Config)) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	flags(fs, cfg)
	_ = fs.Parse(args)
}

func (cfg *Config) updateFromEnv() {
	if addr, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = addr
	}
	if db, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = db
	}
	if addr, ok := os.LookupEnv("LEDGER_ADDRESS"); ok {
		cfg.LedgerAddress = addr
	}
	if timeout, ok := os.LookupEnv("REQUEST_TIMEOUT"); ok {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			log.Printf("config: bad REQUEST_TIMEOUT `%s`, %v", timeout, err)
		} else {
			cfg.RequestTimeout = d
		}
	}
	if lvl, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = lvl
	}
}
