package main

import (
	"bytes"
	"flag"
	"fmt"
	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 500
	historyDays  = 14
)

var baseURL = flag.String("url", "http://127.0.0.1:8090", "activitybot base URL")

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type event struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	Username string `json:"username,omitempty"`
	Date     string `json:"date,omitempty"`
}

func main() {
	flag.Parse()

	fmt.Println("=== ActivityBot Load Test ===")
	fmt.Printf("Target: %s | Workers: %d | Duration: %s\n", *baseURL, numWorkers, testDuration)
	fmt.Printf("Users: %d | History: %d days\n\n", numUsers, historyDays)

	fmt.Print("Waiting for server... ")
	if !waitForServer() {
		fmt.Println("FAILED: server not responding")
		return
	}
	fmt.Println("OK")

	// Every event is flushed to the data file, so this phase measures
	// the write path end to end.
	fmt.Println("\n--- Phase 1: Backfilling history (POST /events) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return postEvent(rng, true)
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% events, 40% queries) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.60 {
			return postEvent(rng, false)
		}
		return query(rng)
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (5% events, 95% queries) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.05 {
			return postEvent(rng, false)
		}
		return query(rng)
	})
}

func waitForServer() bool {
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			return true
		}
		time.Sleep(200 * time.Millisecond)
	}
	return false
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	totalOps := atomic.NewInt64(0)
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
					totalOps.Inc()
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, totalOps.Load(), duration)
}

func printResults(allResults map[string]*stats, totalOps int64, duration time.Duration) {
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	fmt.Println("  " + strings.Repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func randomUser(rng *rand.Rand) string {
	return fmt.Sprintf("%d", 100000000000000000+rng.Intn(numUsers))
}

// postEvent sends mostly messages with the occasional join or leave. With
// backfill set, the event is dated somewhere in the recent history.
func postEvent(rng *rand.Rand, backfill bool) result {
	ev := event{Type: "message", UserID: randomUser(rng)}
	switch r := rng.Float64(); {
	case r < 0.02:
		ev.Type = "join"
	case r < 0.03:
		ev.Type = "leave"
	}
	if ev.Type != "message" {
		ev.Username = "user_" + ev.UserID[len(ev.UserID)-3:]
	}
	if backfill {
		ev.Date = time.Now().UTC().AddDate(0, 0, -rng.Intn(historyDays)).Format("2006-01-02")
	}

	data, _ := json.Marshal(ev)
	endpoint := "POST /events " + ev.Type
	start := time.Now()
	resp, err := httpClient.Post(*baseURL+"/events", "application/json", bytes.NewReader(data))
	return finish(endpoint, start, resp, err, http.StatusCreated)
}

func query(rng *rand.Rand) result {
	switch r := rng.Float64(); {
	case r < 0.30:
		return get("GET /leaderboard", fmt.Sprintf("/leaderboard?limit=%d", rng.Intn(25)+1))
	case r < 0.60:
		return get("GET /profile", "/profile?user="+randomUser(rng))
	case r < 0.85:
		return get("GET /activity", "/activity?user="+randomUser(rng))
	default:
		return get("GET /stats", "/stats")
	}
}

func get(endpoint, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + path)
	return finish(endpoint, start, resp, err, http.StatusOK)
}

func finish(endpoint string, start time.Time, resp *http.Response, err error, want int) result {
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
