// Package main provides a standalone CLI tool for exercising a running
// validation API server. It posts one or more email addresses to
// /api/v1/validate and prints each result as JSON.
//
// Usage:
//
//	test-client --addr http://localhost:8080 test@example.com user@mailinator.com
//	test-client --key <api-key> --samples
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// samples cover the interesting classifications: default, trusted,
// disposable, and a handful of rejections.
var samples = []string{
	"test@example.com",
	"user@google.com",
	"user@mailinator.com",
	"user@MAILINATOR.COM",
	"",
	"test2.com",
	"te..st@domain.com",
	"test@münchen.de",
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the validation API server")
	key := flag.String("key", "", "API key for Bearer auth (optional)")
	useSamples := flag.Bool("samples", false, "validate a built-in sample set instead of arguments")
	flag.Parse()

	emails := flag.Args()
	if *useSamples {
		emails = samples
	}
	if len(emails) == 0 {
		fmt.Fprintln(os.Stderr, "error: no email addresses given (pass arguments or --samples)")
		flag.Usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	exitCode := 0
	for _, email := range emails {
		if err := validateOne(client, *addr, *key, email); err != nil {
			fmt.Fprintf(os.Stderr, "error: %q: %v\n", email, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func validateOne(client *http.Client, addr, key, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, addr+"/api/v1/validate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, respBody)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		return err
	}

	fmt.Printf("%q:\n%s\n", email, pretty.String())
	return nil
}
