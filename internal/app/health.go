package app

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"storyfuse.dev/storyfuse/internal/cli"
	"storyfuse.dev/storyfuse/internal/globaltime"
)

func runHealth(args []string) int {
	fs := flag.NewFlagSet("health", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	format := fs.String("format", outputFormatTable, "Output format: table or json")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	outputFormat, err := parseOutputFormat(*format, outputFormatTable)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, logger, err := loadConfigAndLogger(envLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	providers := buildProviders(cfg, logger)
	providerIDs := make([]string, 0, len(providers))
	for _, p := range providers {
		providerIDs = append(providerIDs, string(p.ID()))
	}

	status := map[string]any{
		"time":                 globaltime.Now(),
		"environment":          cfg.Environment,
		"providers":            providerIDs,
		"generation_available": cfg.GeminiAPIKey != "",
		"cache_size":           cfg.CacheSize,
		"cache_ttl_minutes":    cfg.CacheTTLMinutes,
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(status); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
			return 1
		}
	} else {
		fmt.Printf("environment: %s\n", cfg.Environment)
		fmt.Printf("providers: %v\n", providerIDs)
		fmt.Printf("generation available: %t\n", cfg.GeminiAPIKey != "")
	}

	if len(providers) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no providers configured")
		return 1
	}

	logger.Info().Strs("providers", providerIDs).Msg("health check passed")
	return 0
}
