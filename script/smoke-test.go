package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"sync"
	"time"
)

// RegisterPayload is the registration request body
type RegisterPayload struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	GroupCode  string `json:"groupCode,omitempty"`
	GroupName  string `json:"groupName,omitempty"`
	Multiplier int    `json:"multiplier,omitempty"`
}

// RegisterReply is the part of the registration response the script needs
type RegisterReply struct {
	UserID    uint64 `json:"userId"`
	GroupCode string `json:"groupCode"`
	GroupName string `json:"groupName"`
	Token     string `json:"token"`
}

// LoginReply carries the session token returned by /login
type LoginReply struct {
	UserID uint64 `json:"userId"`
	Token  string `json:"token"`
}

// TestStats aggregates request outcomes across workers
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalResponseTime  time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	ErrorCounts        map[string]int
	Lock               sync.Mutex
}

func (s *TestStats) record(elapsed time.Duration, err error) {
	s.Lock.Lock()
	defer s.Lock.Unlock()

	s.TotalRequests++
	if err != nil {
		s.FailedRequests++
		s.ErrorCounts[err.Error()]++
		return
	}
	s.SuccessfulRequests++
	s.TotalResponseTime += elapsed
	if s.MinResponseTime == 0 || elapsed < s.MinResponseTime {
		s.MinResponseTime = elapsed
	}
	if elapsed > s.MaxResponseTime {
		s.MaxResponseTime = elapsed
	}
}

type member struct {
	username string
	token    string
}

func main() {
	members := flag.Int("m", 3, "Number of members to register into the shared group")
	deposits := flag.Int("n", 50, "Total number of deposits to record")
	concurrency := flag.Int("c", 5, "Number of concurrent workers")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 50, "Delay between requests per worker in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	password := "smoke-test-pass"
	stamp := time.Now().UnixNano()

	// First member creates the group, the rest join via its code
	founder := fmt.Sprintf("smoke-%d-0", stamp)
	reply, err := register(client, *baseURL, RegisterPayload{
		Username:  founder,
		Password:  password,
		GroupName: "Smoke test plan",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "register founder: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created group %s (%s)\n", reply.GroupCode, reply.GroupName)

	roster := []member{{username: founder, token: reply.Token}}
	for i := 1; i < *members; i++ {
		name := fmt.Sprintf("smoke-%d-%d", stamp, i)
		joined, err := register(client, *baseURL, RegisterPayload{
			Username:   name,
			Password:   password,
			GroupCode:  reply.GroupCode,
			Multiplier: 1 + i%3,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "register %s: %v\n", name, err)
			os.Exit(1)
		}
		roster = append(roster, member{username: name, token: joined.Token})
	}
	fmt.Printf("Registered %d members\n", len(roster))

	stats := &TestStats{ErrorCounts: make(map[string]int)}
	jobs := make(chan int, *deposits)
	for i := 0; i < *deposits; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < *concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				m := roster[rand.Intn(len(roster))]
				day := 1 + rand.Intn(365)
				elapsed, err := saveDeposit(client, *baseURL, m.token, day)
				stats.record(elapsed, err)
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}()
	}
	wg.Wait()
	totalTime := time.Since(start)

	// A dashboard read proves the aggregates render after the writes
	if err := fetchDashboard(client, *baseURL, roster[0].token); err != nil {
		fmt.Fprintf(os.Stderr, "fetch dashboard: %v\n", err)
		os.Exit(1)
	}

	printStats(stats, totalTime)
}

func register(client *http.Client, baseURL string, payload RegisterPayload) (*RegisterReply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	resp, err := client.Post(baseURL+"/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var reply RegisterReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, err
	}
	// Registration sets the session cookie; non-browser clients log in for a
	// bearer token instead
	login, err := loginToken(client, baseURL, payload.Username, payload.Password)
	if err != nil {
		return nil, err
	}
	reply.Token = login
	return &reply, nil
}

func loginToken(client *http.Client, baseURL, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	resp, err := client.Post(baseURL+"/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login status %d", resp.StatusCode)
	}
	var reply LoginReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", err
	}
	return reply.Token, nil
}

func saveDeposit(client *http.Client, baseURL, token string, day int) (time.Duration, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("dayNumber", fmt.Sprintf("%d", day))
	_ = writer.WriteField("note", fmt.Sprintf("smoke test day %d", day))
	if err := writer.Close(); err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/save", &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		return elapsed, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return elapsed, fmt.Errorf("save status %d", resp.StatusCode)
	}
	return elapsed, nil
}

func fetchDashboard(client *http.Client, baseURL, token string) error {
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/data", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dashboard status %d", resp.StatusCode)
	}

	var dashboard struct {
		GroupName   string `json:"group_name"`
		Leaderboard []struct {
			Name    string  `json:"name"`
			Percent float64 `json:"percent"`
		} `json:"leaderboard"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&dashboard); err != nil {
		return err
	}
	fmt.Printf("Dashboard for %q with %d leaderboard entries\n", dashboard.GroupName, len(dashboard.Leaderboard))
	for _, entry := range dashboard.Leaderboard {
		fmt.Printf("  %-24s %6.1f%%\n", entry.Name, entry.Percent)
	}
	return nil
}

func printStats(stats *TestStats, totalTime time.Duration) {
	fmt.Println("\n=== Deposit write results ===")
	fmt.Printf("Total requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful:          %d\n", stats.SuccessfulRequests)
	fmt.Printf("Failed:              %d\n", stats.FailedRequests)
	fmt.Printf("Total time:          %v\n", totalTime.Round(time.Millisecond))
	if stats.SuccessfulRequests > 0 {
		avg := stats.TotalResponseTime / time.Duration(stats.SuccessfulRequests)
		fmt.Printf("Avg response time:   %v\n", avg.Round(time.Microsecond))
		fmt.Printf("Min response time:   %v\n", stats.MinResponseTime.Round(time.Microsecond))
		fmt.Printf("Max response time:   %v\n", stats.MaxResponseTime.Round(time.Microsecond))
	}
	if len(stats.ErrorCounts) > 0 {
		fmt.Println("Errors:")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("  %dx %s\n", count, msg)
		}
	}
}
