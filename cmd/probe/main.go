// Probe drives one end-to-end payment-request flow against a running
// server and reports which steps passed. Useful as a smoke check after
// deploying the simulator, and as a worked example of the API contract:
// every call answers 200 and the boolean status field carries the verdict.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var targetURL string

func init() {
	flag.StringVar(&targetURL, "url", "http://localhost:8080", "API Base URL")
}

type step struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func main() {
	flag.Parse()
	log.Printf("Probing %s", targetURL)

	client := &http.Client{Timeout: 5 * time.Second}
	start := time.Now()
	var steps []step
	failed := 0

	run := func(name, method, path, statusKey string, body map[string]any) map[string]any {
		resp, err := call(client, method, path, body)
		if err != nil {
			steps = append(steps, step{Name: name, Detail: err.Error()})
			failed++
			return nil
		}
		ok, _ := resp[statusKey].(bool)
		s := step{Name: name, Status: ok}
		if !ok {
			s.Detail, _ = resp["message"].(string)
			failed++
		}
		steps = append(steps, s)
		return resp
	}

	run("reset", "POST", "/api/v1/reset", "reset_status", nil)
	run("login alice", "POST", "/api/v1/session/login", "login_status",
		map[string]any{"email": "user1@example.com"})
	created := run("request $30 from bob", "POST", "/api/v1/payment-requests", "create_status",
		map[string]any{"to_user": "user2@example.com", "amount": 30, "description": "probe flow"})
	run("login bob", "POST", "/api/v1/session/login", "login_status",
		map[string]any{"email": "user2@example.com"})

	requestID := float64(-1)
	if created != nil {
		if pr, ok := created["payment_request"].(map[string]any); ok {
			requestID, _ = pr["id"].(float64)
		}
	}
	run("approve request", "POST",
		fmt.Sprintf("/api/v1/payment-requests/%d/approve", int64(requestID)), "approve_status", nil)
	run("bob balance", "GET", "/api/v1/balance", "balance_status", nil)
	run("login alice again", "POST", "/api/v1/session/login", "login_status",
		map[string]any{"email": "user1@example.com"})
	run("alice notifications", "GET", "/api/v1/notifications", "notifications_status", nil)

	printResults(steps, failed, time.Since(start))
	if failed > 0 {
		os.Exit(1)
	}
}

func call(client *http.Client, method, path string, body map[string]any) (map[string]any, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, targetURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP %d", resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func printResults(steps []step, failed int, d time.Duration) {
	results := map[string]any{
		"target":       targetURL,
		"duration_sec": d.Seconds(),
		"steps":        steps,
		"failed":       failed,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(results)
}
