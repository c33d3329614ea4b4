// Package main provides a standalone health check command for the solver
// This command can be used for Docker health checks and monitoring scripts
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// options holds command-line configuration
type options struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	Verbose    bool
}

func main() {
	opts := parseFlags()
	os.Exit(run(opts))
}

// parseFlags parses command-line flags
func parseFlags() options {
	opts := options{}

	flag.StringVar(&opts.URL, "url", "http://localhost:5111/health", "Health check endpoint URL")
	flag.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.IntVar(&opts.RetryCount, "retry", 0, "Number of retries on failure")
	flag.DurationVar(&opts.RetryDelay, "retry-delay", 1*time.Second, "Delay between retries")
	flag.BoolVar(&opts.Verbose, "verbose", false, "Verbose output")

	flag.Parse()
	return opts
}

func run(opts options) int {
	client := &http.Client{Timeout: opts.Timeout}

	var lastErr error
	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(opts.RetryDelay)
		}

		code, err := check(client, opts)
		if err == nil {
			return code
		}
		lastErr = err
		if opts.Verbose {
			fmt.Fprintf(os.Stderr, "attempt %d failed: %v\n", attempt+1, err)
		}
	}

	fmt.Fprintf(os.Stderr, "health check failed: %v\n", lastErr)
	return exitCodeError
}

func check(client *http.Client, opts options) (int, error) {
	resp, err := client.Get(opts.URL)
	if err != nil {
		return exitCodeError, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return exitCodeFailure, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return exitCodeFailure, fmt.Errorf("decode response: %w", err)
	}
	if body.Status != "ok" {
		return exitCodeFailure, fmt.Errorf("unhealthy status %q", body.Status)
	}

	if opts.Verbose {
		fmt.Printf("healthy: %s\n", body.Message)
	}
	return exitCodeSuccess, nil
}
