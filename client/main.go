// Dev/test client for dev/test/troubleshooting.
package main

import (
	"bytes"
	"flag"
	"io"
	"net/http"

	"github.com/apex/log"
)

const (
	serviceUrl  = "http://127.0.0.1:8080"
	contentType = "application/json"
)

var (
	action = flag.String("action", "summary", "One of: summary, rates, leaderboard, directory, projection, posts, savepost, targets")
)

func doGet(path string) {
	resp, err := http.Get(serviceUrl + path)
	if err != nil {
		log.Errorf("Failed to call the server: %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %s", resp.Status, string(body))
}

func doPost(path, buf string) {
	resp, err := http.Post(serviceUrl+path, contentType, bytes.NewBufferString(buf))
	if err != nil {
		log.Errorf("Failed to call the server: %v", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	log.Infof("Done, %s: %s", resp.Status, string(body))
}

func doSavePost() {
	buf := `
{
	"title": "Quarterly review",
	"dateTime": "2024-06-15T09:00:00Z",
	"content": "Scope 1 numbers look stable."
}`
	doPost("/api/companies/c1/posts", buf)
}

func main() {
	flag.Parse()

	switch *action {
	case "summary":
		doGet("/api/summary?unit=ktCO2e")
	case "rates":
		doGet("/api/rates?mode=live&source=USD&symbols=KRW,EUR")
	case "leaderboard":
		doGet("/api/leaderboard?mode=country&sort=tax&top=5&currency=KRW")
	case "directory":
		doGet("/api/directory?mode=company&q=motor&page=1")
	case "projection":
		doGet("/api/projection?baseline_year=2024&target_year=2030&reduction_pct=30")
	case "posts":
		doGet("/api/companies/c1/posts")
	case "savepost":
		doSavePost()
	case "targets":
		doGet("/api/targets")
	default:
		log.Errorf("Unknown action %q", *action)
	}
}
