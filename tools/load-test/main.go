package main

import (
	"bytes"
	"flag"
	"fmt"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "attendance API base URL")
	numEmployees := flag.Int("employees", 1000, "number of distinct employees")
	concurrency := flag.Int("concurrency", 50, "maximum in-flight employees")
	withSelfie := flag.Bool("selfie", true, "attach a small selfie to every submission")
	flag.Parse()

	url := *baseURL + "/attendance"
	// Each employee checks in and then checks out.
	kinds := []string{"check-in", "check-out"}
	totalRequests := *numEmployees * len(kinds)
	date := time.Now().Format("2006-01-02")

	fmt.Printf("Starting load test: %d employees (%d requests each) to %s with concurrency %d\n",
		*numEmployees, len(kinds), url, *concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, *concurrency)

	var successCount int64
	var failCount int64

	startTime := time.Now()

	for i := 0; i < *numEmployees; i++ {
		wg.Add(1)
		sem <- struct{}{}

		go func(employee string) {
			defer wg.Done()
			defer func() { <-sem }()

			for _, kind := range kinds {
				body, contentType, err := submission(employee, kind, date, *withSelfie)
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				resp, err := http.Post(url, contentType, body)
				if err != nil {
					atomic.AddInt64(&failCount, 1)
					continue
				}

				if resp.StatusCode >= 200 && resp.StatusCode < 300 {
					atomic.AddInt64(&successCount, 1)
				} else {
					atomic.AddInt64(&failCount, 1)
				}
				resp.Body.Close()
			}
		}(fmt.Sprintf("load-test-emp-%d", i))
	}

	wg.Wait()
	duration := time.Since(startTime)

	fmt.Println("\n--- Load Test Results ---")
	fmt.Printf("Total Duration: %v\n", duration)
	fmt.Printf("Total Requests: %d\n", totalRequests)
	fmt.Printf("Successful:     %d\n", successCount)
	fmt.Printf("Failed:         %d\n", failCount)
	fmt.Printf("Requests/Sec:   %.2f\n", float64(totalRequests)/duration.Seconds())
}

func submission(employee, kind, date string, withSelfie bool) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"employee":  employee,
		"type":      kind,
		"date":      date,
		"time":      time.Now().Format("15:04"),
		"latitude":  "12.9716",
		"longitude": "77.5946",
		"location":  "Load test",
		"office":    "HQ",
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	if withSelfie {
		part, err := mw.CreateFormFile("selfie", employee+".jpg")
		if err != nil {
			return nil, "", err
		}
		// JPEG SOI/EOI markers are enough for the sink; the content is never decoded.
		if _, err := part.Write([]byte{0xFF, 0xD8, 0xFF, 0xD9}); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
