// Command seed_content fills a running go-cms server with generated content
// from several concurrent clients and checks that no record was lost.
//
//	go run test_scripts/seed_content.go --records 200 --workers 8
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

var speakers = []string{"Pastor Mensah", "Rev. Osei", "Deaconess Ama", "Elder Kofi"}

// generatePayload builds a valid create payload for the given content type
func generatePayload(contentType string, i int) map[string]interface{} {
	tag := uuid.NewString()[:8]
	switch contentType {
	case "events":
		return map[string]interface{}{
			"title":       fmt.Sprintf("Event %d", i),
			"description": "Generated by seed_content",
			"date":        time.Now().AddDate(0, 0, rand.Intn(90)).Format("2006-01-02"),
		}
	case "sermons":
		return map[string]interface{}{
			"title":   fmt.Sprintf("Sermon %d", i),
			"speaker": speakers[rand.Intn(len(speakers))],
		}
	case "members":
		return map[string]interface{}{
			"name":  fmt.Sprintf("Member %d", i),
			"email": fmt.Sprintf("member-%s@example.org", tag),
		}
	default:
		return map[string]interface{}{
			"name":    fmt.Sprintf("Visitor %s", tag),
			"message": "Generated by seed_content",
		}
	}
}

// createRecord sends a POST request creating one record
func createRecord(client *http.Client, baseURL, contentType string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := client.Post(baseURL+"/api/"+contentType, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// countIDs lists a content type and returns the record count and distinct ids
func countIDs(client *http.Client, baseURL, contentType string) (int, int, error) {
	resp, err := client.Get(baseURL + "/api/" + contentType)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	var records []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return 0, 0, err
	}

	ids := make(map[float64]bool, len(records))
	for _, rec := range records {
		if id, ok := rec["id"].(float64); ok {
			ids[id] = true
		}
	}
	return len(records), len(ids), nil
}

func main() {
	numRecords := pflag.IntP("records", "n", 100, "Records to create per content type")
	workers := pflag.IntP("workers", "w", 4, "Concurrent clients")
	serverURL := pflag.String("server", "http://localhost:8080", "go-cms base URL")
	pflag.Parse()

	if *numRecords <= 0 || *workers <= 0 {
		fmt.Println("Error: --records and --workers must be greater than 0")
		os.Exit(1)
	}

	contentTypes := []string{"events", "sermons", "members", "testimonies"}
	client := &http.Client{Timeout: 10 * time.Second}

	before := make(map[string]int)
	for _, ct := range contentTypes {
		n, _, err := countIDs(client, *serverURL, ct)
		if err != nil {
			fmt.Printf("Error: cannot reach %s: %v\n", *serverURL, err)
			os.Exit(1)
		}
		before[ct] = n
	}

	fmt.Printf("Seeding %d records into each of %v with %d workers\n", *numRecords, contentTypes, *workers)

	startTime := time.Now()
	var successCount, errorCount int64

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ct := contentTypes[i%len(contentTypes)]
				if err := createRecord(client, *serverURL, ct, generatePayload(ct, i)); err != nil {
					atomic.AddInt64(&errorCount, 1)
					fmt.Printf("Error creating %s %d: %v\n", ct, i, err)
					continue
				}
				atomic.AddInt64(&successCount, 1)
			}
		}()
	}

	total := *numRecords * len(contentTypes)
	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	totalTime := time.Since(startTime)

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEED COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Records attempted: %d\n", total)
	fmt.Printf("Successful:        %d\n", successCount)
	fmt.Printf("Failed:            %d\n", errorCount)
	fmt.Printf("Total time:        %v\n", totalTime)
	fmt.Printf("Average rate:      %.2f records/sec\n", float64(total)/totalTime.Seconds())

	lost := false
	for _, ct := range contentTypes {
		n, distinct, err := countIDs(client, *serverURL, ct)
		if err != nil {
			fmt.Printf("Error: listing %s: %v\n", ct, err)
			os.Exit(1)
		}
		fmt.Printf("%-12s %d records (%d new), %d distinct ids\n", ct, n, n-before[ct], distinct)
		if n != distinct || n-before[ct] != *numRecords {
			lost = true
		}
	}

	if errorCount > 0 || lost {
		fmt.Println("\nWarning: records were rejected, lost or duplicated")
		os.Exit(1)
	}
	fmt.Println("\nSeed completed successfully!")
}
