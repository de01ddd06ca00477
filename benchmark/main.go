// Package main provides a performance benchmarking tool for the metricviz CLI.
// It measures the latency of each command against every reachable store backend,
// running each command multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - metricviz binary installed and available in PATH
// - REDIS_URL, METRICVIZ_MYSQL_DSN and METRICVIZ_POSTGRES_DSN are optional; backends without one are skipped
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the SQLite database and rendered charts
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Backend  string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Seed     int // points pushed before the read-side commands run
	Backends map[string]string
	Order    []string
}

// Commands measured per backend, in execution order.
var benchCommands = []struct {
	Name string
	Args []string
}{
	{"push", []string{"push", "42.5", "--label", "bench"}},
	{"metrics", []string{"metrics", "--output", "json"}},
	{"chart", []string{"chart", "--chart-width", "1200", "--chart-height", "600"}},
	{"clear", []string{"clear"}},
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: time.Minute,
		Runs:    5,
		Seed:    100,
		Backends: map[string]string{
			"sqlite":     "",
			"redis":      os.Getenv("REDIS_URL"),
			"mysql":      os.Getenv("METRICVIZ_MYSQL_DSN"),
			"postgresql": os.Getenv("METRICVIZ_POSTGRES_DSN"),
		},
		Order: []string{"sqlite", "redis", "mysql", "postgresql"},
	}

	if err := checkPrerequisites(config); err != nil {
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

// checkPrerequisites verifies that the metricviz binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("metricviz"); err != nil {
		return fmt.Errorf("metricviz binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// runBenchmarks executes all benchmark commands across configured backends
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %v timeout, %d runs, %d seed points\n", config.Timeout, config.Runs, config.Seed)

	for _, backend := range config.Order {
		connStr := config.Backends[backend]
		if backend != "sqlite" && connStr == "" {
			fmt.Printf("Skipping %s (no connection string)\n", backend)
			continue
		}
		fmt.Printf("Benchmarking %s\n", backend)

		env := backendEnv(config, backend, connStr)
		if err := seed(config, env); err != nil {
			fmt.Printf("  Warning: failed to seed %s: %v\n", backend, err)
			continue
		}

		for _, c := range benchCommands {
			results = append(results, runBenchmarkSuite(config, env, backend, c.Name, c.Args))
		}
	}

	return results
}

// backendEnv returns the environment that points metricviz at one backend
func backendEnv(config BenchmarkConfig, backend, connStr string) []string {
	env := append(os.Environ(),
		"METRICVIZ_STORE_BACKEND="+backend,
		"METRICVIZ_STATE_KEY=viz_state_bench",
		"METRICVIZ_OUTPUT_FILE="+filepath.Join(config.WorkDir, "bench.png"),
	)
	if backend == "sqlite" {
		// The SQLite database lives in the home directory.
		env = append(env, "HOME="+config.WorkDir)
	} else {
		env = append(env, "METRICVIZ_STORE_CONNECT="+connStr)
	}
	return env
}

// seed fills the document so read-side commands see a full history
func seed(config BenchmarkConfig, env []string) error {
	for i := range config.Seed {
		cmd := exec.Command("metricviz", "push", fmt.Sprintf("%d", i), "--label", "seed")
		cmd.Env = env
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
		}
	}
	return nil
}

// runBenchmarkSuite runs one command repeatedly and summarizes its timings
func runBenchmarkSuite(config BenchmarkConfig, env []string, backend, command string, args []string) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", command, config.Runs)

	coldTime, warmTimes := runBenchmark(config, env, command, args)

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}
	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("    Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Backend:  backend,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a metricviz command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, env []string, command string, args []string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("metricviz", args...)
		cmd.Env = env

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	switch command {
	case "push":
		return strings.Contains(outputStr, "Pushed")
	case "metrics":
		return strings.Contains(outputStr, `"metrics"`)
	case "chart":
		return strings.Contains(outputStr, "chart to")
	case "clear":
		return strings.Contains(outputStr, "Metrics cleared.")
	default:
		return false
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/metricviz_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"backend", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{result.Backend, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, c := range benchCommands {
		printCommandSummary(results, c.Name)
	}

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command
func printCommandSummary(results []BenchmarkResult, command string) {
	fmt.Printf("%s:\n", command)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Cold: %s, Warm: %s\n", result.Backend, result.ColdTime, result.WarmTime)
		}
	}
}
