package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/codingiran/DNSManager/sysdns"
	"github.com/fosrl/newt/logger"
)

var version = "dev"

func main() {
	config := loadConfig(os.Args[1:])

	if config.ShowVersion {
		fmt.Printf("dnsmanager %s\n", version)
		return
	}

	logger.Init(nil)
	logger.GetLogger().SetLevel(parseLogLevel(config.LogLevel))

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	servers, err := sysdns.Get(ctx)
	if err != nil {
		if config.Strict {
			logger.Fatal("Failed to read system DNS configuration: %v", err)
		}
		logger.Debug("System DNS configuration unavailable: %v", err)
		servers = []string{}
	}

	if config.JSON {
		out, err := json.Marshal(servers)
		if err != nil {
			logger.Fatal("Failed to encode server list: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	// One address per line, highest priority first; no output means no DNS
	// is configured, which is not an error
	for _, server := range servers {
		fmt.Println(server)
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "TRACE":
		return logger.TRACE
	case "DEBUG":
		return logger.DEBUG
	case "WARN":
		return logger.WARN
	case "ERROR":
		return logger.ERROR
	case "FATAL":
		return logger.FATAL
	default:
		return logger.INFO
	}
}

// Config holds the CLI options for a single query
type Config struct {
	Timeout     time.Duration
	JSON        bool
	Strict      bool
	LogLevel    string
	ShowVersion bool
}

// loadConfig parses CLI flags with environment variable fallbacks.
// Priority: CLI args > Env vars > Defaults
func loadConfig(args []string) *Config {
	config := &Config{}

	fs := flag.NewFlagSet("dnsmanager", flag.ExitOnError)
	fs.DurationVar(&config.Timeout, "timeout", envDurationOr("DNSMANAGER_TIMEOUT", 5*time.Second),
		"Maximum time to wait for the host configuration query")
	fs.BoolVar(&config.JSON, "json", false, "Print the server list as a JSON array")
	fs.BoolVar(&config.Strict, "strict", false,
		"Exit with an error when the host configuration cannot be read instead of printing nothing")
	fs.StringVar(&config.LogLevel, "log-level", envOr("DNSMANAGER_LOG_LEVEL", "INFO"),
		"Log level (TRACE, DEBUG, INFO, WARN, ERROR, FATAL)")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version and exit")

	// ExitOnError makes this infallible
	_ = fs.Parse(args)

	return config
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("Invalid %s %q, using %s\n", key, value, fallback)
		return fallback
	}
	return parsed
}
