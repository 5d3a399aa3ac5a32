package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/suparena/dynasim"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "Path to a YAML config file")
	debugFlag   = flag.Bool("debug", false, "Enable debug logging")
)

// request is one line of the stdin protocol: a tool name plus its parameters.
type request struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := dynasim.GetVersionInfo()
		fmt.Printf("DynaSim version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dynasim: %v\n", err)
		os.Exit(1)
	}
}

// run reads JSON-lines requests from stdin and writes one response envelope
// per line to stdout.
func run() error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := dynasim.DefaultConfig()
	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv("DYNASIM_CONFIG")
	}
	if configPath != "" {
		if cfg, err = dynasim.LoadConfig(configPath); err != nil {
			return err
		}
		logger.Info("loaded config", zap.String("path", configPath))
	}

	sim := dynasim.New(dynasim.WithConfig(cfg), dynasim.WithLogger(logger))
	logger.Info("simulator ready", zap.Strings("tools", sim.Tools()))

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			logger.Warn("bad request line", zap.Error(err))
			fmt.Fprintf(os.Stderr, "dynasim: bad request: %v\n", err)
			continue
		}
		resp := sim.Invoke(ctx, req.Tool, req.Params)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	summary := sim.LedgerSummary()
	logger.Info("session ledger",
		zap.Int("operations", summary.TotalOperations),
		zap.Float64("totalCost", summary.TotalCost),
		zap.String("recommendedBillingMode", string(summary.RecommendedBillingMode)))
	return nil
}

func newLogger() (*zap.Logger, error) {
	if *debugFlag || os.Getenv("DYNASIM_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
