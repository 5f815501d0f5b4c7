// Package main provides a performance benchmarking tool for the pulse CLI.
// It measures how long each dashboard command takes against a live API,
// first with caching disabled and then with the sqlite cache, treating the first
// successful cached run as cold and averaging the rest as warm.
// Results are written to a CSV file for performance analysis and documentation.
//
// Prerequisites:
// - pulse binary installed and available in PATH
// - A reachable dashboard API
//
// Usage: go run benchmark/main.go [api-base]
//
//	api-base: Base URL of the dashboard API (e.g., http://localhost:8000)
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Case        string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkCase is one pulse invocation to time.
type BenchmarkCase struct {
	Name string
	Args []string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	APIBase     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Cases       []BenchmarkCase
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [api-base]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		APIBase:     os.Args[1],
		Timeout:     time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Cases: []BenchmarkCase{
			{Name: "trend-24h", Args: []string{"trend", "--category", "Just Chatting"}},
			{Name: "trend-30d", Args: []string{"trend", "--category", "Just Chatting", "--preset", "30D"}},
			{Name: "compare-7d", Args: []string{"compare", "--categories", "Just Chatting,League of Legends,Minecraft", "--preset", "7D"}},
			{Name: "volatility", Args: []string{"volatility"}},
			{Name: "live", Args: []string{"live"}},
			{Name: "events", Args: []string{"events"}},
		},
	}

	if _, err := exec.LookPath("pulse"); err != nil {
		fmt.Printf("Prerequisites check failed: pulse binary not found in PATH\n")
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("pulse", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every configured case.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d cases against %s, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Cases), config.APIBase, config.Timeout, config.NoCacheRuns, config.CacheRuns)

	results := make([]BenchmarkResult, 0, len(config.Cases))
	for _, c := range config.Cases {
		results = append(results, runBenchmarkSuite(config, c))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a case.
func runBenchmarkSuite(config BenchmarkConfig, c BenchmarkCase) BenchmarkResult {
	fmt.Printf("Running %s\n", c.Name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, c.Args, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Case:        c.Name,
		Command:     c.Args[0],
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a pulse command several times and returns the cold time and warm times.
func runBenchmark(config BenchmarkConfig, extraArgs []string, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{"--api-base", config.APIBase, "--cache-backend", cacheBackend, "--output", "json"}, extraArgs...)

	var times []float64
	for range numRuns {
		elapsed, err := timeRun(config.Timeout, args)
		if err != nil {
			fmt.Printf("    run failed: %v\n", err)
			continue
		}
		times = append(times, elapsed.Seconds())
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// timeRun runs pulse once and measures the wall time of a successful run.
func timeRun(timeout time.Duration, args []string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	output, err := exec.CommandContext(ctx, "pulse", args...).Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, ctx.Err()
	}
	if err != nil {
		return 0, err
	}
	if len(output) == 0 {
		return 0, errors.New("empty output")
	}
	return time.Since(start), nil
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/pulse_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"case", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Case, r.Command, r.NoCacheTime, r.ColdTime, r.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, r := range results {
		fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", r.Case, r.NoCacheTime, r.ColdTime, r.WarmTime)
	}
}
