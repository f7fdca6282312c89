// Package main provides a performance benchmarking tool for the Soccerboard CLI.
// It measures execution times of each report command against a match feed,
// running each test multiple times, treating the first successful cached run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - soccerboard binary installed and available in PATH
// - A match feed reachable as a URL or local CSV path
//
// Usage: go run benchmark/main.go [feed-source] [team-id]
//
//	feed-source: URL or path of the match history CSV
//	team-id: team used for the team command (defaults to the first listed team)
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Source      string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Source      string
	TeamID      string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	CacheTTL    string
}

// benchmarkCommand is one report invocation under test.
type benchmarkCommand struct {
	name string
	args []string
}

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Printf("Usage: %s [feed-source] [team-id]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		Source:      os.Args[1],
		Timeout:     2 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		CacheTTL:    "1h",
	}
	if len(os.Args) == 3 {
		config.TeamID = os.Args[2]
	}

	if err := checkPrerequisites(&config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies the binary exists and resolves a team to benchmark.
func checkPrerequisites(config *BenchmarkConfig) error {
	if _, err := exec.LookPath("soccerboard"); err != nil {
		return errors.New("soccerboard binary not found in PATH")
	}

	if config.TeamID != "" {
		return nil
	}

	out, err := runSoccerboard(config.Timeout, "teams", "--source", config.Source, "--cache-backend", "none", "--color", "no")
	if err != nil {
		return fmt.Errorf("failed to list teams from %s: %w", config.Source, err)
	}
	for line := range strings.SplitSeq(out, "\n") {
		if id := strings.TrimSpace(line); id != "" {
			config.TeamID = id
			return nil
		}
	}
	return fmt.Errorf("feed %s has no teams", config.Source)
}

// clearCache wipes the SQLite cache so the first cached run is cold.
func clearCache(config BenchmarkConfig) {
	if _, err := runSoccerboard(config.Timeout, "cache", "clear", "--cache-backend", "sqlite"); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\n", err)
	}
}

// runBenchmarks executes all benchmark tests against the configured feed.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	commands := []benchmarkCommand{
		{name: "standings", args: []string{"standings", "--sort", "winpct"}},
		{name: "team", args: []string{"team", config.TeamID}},
		{name: "competition", args: []string{"competition"}},
		{name: "teams", args: []string{"teams"}},
	}

	fmt.Printf("Starting benchmark: %s, %v timeout, no-cache: %d runs, cache: %d runs\n",
		config.Source, config.Timeout, config.NoCacheRuns, config.CacheRuns)

	results := make([]BenchmarkResult, 0, len(commands))
	for _, c := range commands {
		results = append(results, runBenchmarkSuite(config, c))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, c benchmarkCommand) BenchmarkResult {
	fmt.Printf("Running %s\n", c.name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, c, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs start from an empty store
	clearCache(config)
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Source:      config.Source,
		Command:     c.name,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a command multiple times with the given cache backend and returns cold time and warm times.
func runBenchmark(config BenchmarkConfig, c benchmarkCommand, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{}, c.args...)
	args = append(args,
		"--source", config.Source,
		"--cache-backend", cacheBackend,
		"--cache-ttl", config.CacheTTL,
		"--output", "json",
	)

	var times []float64
	for range numRuns {
		start := time.Now()
		out, err := runSoccerboard(config.Timeout, args...)
		if err == nil && isSuccess(out) {
			times = append(times, time.Since(start).Seconds())
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// runSoccerboard runs the binary with a deadline and returns its stdout.
func runSoccerboard(timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "soccerboard", args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return string(out), fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// isSuccess checks if command output looks like a complete JSON document.
func isSuccess(output string) bool {
	trimmed := strings.TrimSpace(output)
	return strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/soccerboard_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"source", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Source, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
