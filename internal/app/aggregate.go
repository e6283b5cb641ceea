package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"storyfuse.dev/storyfuse/internal/cli"
	"storyfuse.dev/storyfuse/internal/pipeline"
)

func runAggregate(args []string) int {
	fs := flag.NewFlagSet("aggregate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	query := fs.String("query", "", "Search query (empty fetches top headlines)")
	country := fs.String("country", "", "Two-letter country code filter")
	category := fs.String("category", "", "Category filter (business, sports, ...)")
	page := fs.Int("page", 1, "Result page")
	format := fs.String("format", outputFormatTable, "Output format: table or json")
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall command timeout")

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
	if *page < 1 {
		fmt.Fprintln(os.Stderr, "--page must be >= 1")
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rt, err := buildRuntime(ctx, envLoader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	defer rt.close()

	resp, err := rt.aggregator.Aggregate(ctx, pipeline.Request{
		Query:    *query,
		Country:  *country,
		Category: *category,
		Page:     *page,
	})
	if err != nil {
		rt.logger.Error().Err(err).Msg("aggregate command failed")
		fmt.Fprintf(os.Stderr, "Aggregation failed: %v\n", err)
		return 1
	}

	if outputFormat == outputFormatJSON {
		if err := printJSON(resp); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
			return 1
		}
		return 0
	}

	if err := printAggregateTable(resp); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return 1
	}
	return 0
}

func printAggregateTable(resp pipeline.Response) error {
	rows := make([][]string, 0, len(resp.Groups))
	for _, group := range resp.Groups {
		latest := ""
		for _, article := range group.Articles {
			if ts := formatUTCTimestampPtr(article.PublishedAt); ts > latest {
				latest = ts
			}
		}
		rows = append(rows, []string{
			group.GroupID,
			truncateForTable(group.GroupTitle, 60),
			strconv.Itoa(len(group.Articles)),
			latest,
			truncateForTable(group.SimpleComparison, 70),
		})
	}

	if err := writeTable([]string{"GROUP", "TITLE", "ARTICLES", "LATEST", "COMPARISON"}, rows); err != nil {
		return err
	}

	fmt.Printf("\nPage %d of %d (%d groups total)\n",
		resp.Pagination.CurrentPage, resp.Pagination.TotalPages, resp.Pagination.TotalGroups)
	for _, warning := range resp.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}
	return nil
}
