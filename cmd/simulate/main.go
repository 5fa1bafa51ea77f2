// simulate drives the full care-coordination workflow against a running
// api-server: a coordinator logs a scheduled call, the provider accepts,
// declines or proposes a reschedule, and the patient confirms. It reports
// per-operation latency and outcome counts when done.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type SimConfig struct {
	APIBaseURL string
	Sessions   int
	Workers    int
}

type OperationMetrics struct {
	Total     int64
	Success   int64
	Rejected  int64
	Error     int64
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, status int, err error) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case err != nil || status >= 500:
		atomic.AddInt64(&om.Error, 1)
	case status >= 400:
		atomic.AddInt64(&om.Rejected, 1)
	default:
		atomic.AddInt64(&om.Success, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}
	avg = sum / time.Duration(len(latencies))

	idx := len(latencies) * 95 / 100
	if idx >= len(latencies) {
		idx = len(latencies) - 1
	}
	return avg, latencies[idx]
}

type Metrics struct {
	CreateSession OperationMetrics
	LogCall       OperationMetrics
	Accept        OperationMetrics
	Decline       OperationMetrics
	Reschedule    OperationMetrics
	Confirm       OperationMetrics
	EndSession    OperationMetrics
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	metrics Metrics
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var cfg SimConfig
	flag.StringVar(&cfg.APIBaseURL, "api", "http://127.0.0.1:8080", "api-server base URL")
	flag.IntVar(&cfg.Sessions, "sessions", 50, "number of workflow sessions to run")
	flag.IntVar(&cfg.Workers, "workers", 5, "concurrent workers")
	flag.Parse()

	log.Printf("simulator starting: api=%s sessions=%d workers=%d", cfg.APIBaseURL, cfg.Sessions, cfg.Workers)

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	sim.Run()
	sim.Report()
}

func (s *Simulator) Run() {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < s.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if err := s.runWorkflow(); err != nil {
					log.Printf("workflow error: %v", err)
				}
			}
		}()
	}

	for i := 0; i < s.config.Sessions; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

// runWorkflow plays one session end to end.
func (s *Simulator) runWorkflow() error {
	sessionID, err := s.createSession()
	if err != nil {
		return err
	}
	defer s.endSession(sessionID)

	created, err := s.logScheduledCall(sessionID)
	if err != nil {
		return err
	}

	if created != "" {
		switch rand.Intn(3) {
		case 0:
			s.post(&s.metrics.Accept,
				fmt.Sprintf("%s/sessions/%s/provider/requests/%s/accept", s.config.APIBaseURL, sessionID, created),
				map[string]any{"slot_index": 0})
		case 1:
			s.post(&s.metrics.Decline,
				fmt.Sprintf("%s/sessions/%s/provider/requests/%s/decline", s.config.APIBaseURL, sessionID, created),
				map[string]any{"reason": "schedule-conflict"})
		default:
			s.post(&s.metrics.Reschedule,
				fmt.Sprintf("%s/sessions/%s/provider/requests/%s/reschedule", s.config.APIBaseURL, sessionID, created),
				map[string]any{"slots": []map[string]string{
					{"date": futureDate(7), "time": "09:00"},
					{"date": futureDate(8), "time": "10:30"},
				}})
		}
	}

	s.post(&s.metrics.Confirm,
		fmt.Sprintf("%s/sessions/%s/patient/appointment/confirm", s.config.APIBaseURL, sessionID), nil)

	return nil
}

func (s *Simulator) createSession() (string, error) {
	status, body, err := s.post(&s.metrics.CreateSession, s.config.APIBaseURL+"/sessions", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("create session: status %d", status)
	}
	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return resp.SessionID, nil
}

func (s *Simulator) logScheduledCall(sessionID string) (string, error) {
	url := fmt.Sprintf("%s/sessions/%s/coordinator/patients/1/call-attempts", s.config.APIBaseURL, sessionID)
	_, body, err := s.post(&s.metrics.LogCall, url, map[string]any{
		"disposition": "scheduled",
		"slots": []map[string]string{
			{"date": futureDate(3), "time": "10:00"},
			{"date": futureDate(4), "time": "14:30"},
		},
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		Request *struct {
			ID string `json:"id"`
		} `json:"request"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.Request == nil {
		return "", nil
	}
	return resp.Request.ID, nil
}

func (s *Simulator) endSession(sessionID string) {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/sessions/%s", s.config.APIBaseURL, sessionID), nil)
	if err != nil {
		return
	}
	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.EndSession.Record(time.Since(start), 0, err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	s.metrics.EndSession.Record(time.Since(start), resp.StatusCode, nil)
}

func (s *Simulator) post(om *OperationMetrics, url string, payload any) (int, []byte, error) {
	var body io.Reader = bytes.NewReader([]byte("{}"))
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(data)
	}

	start := time.Now()
	resp, err := s.client.Post(url, "application/json", body)
	if err != nil {
		om.Record(time.Since(start), 0, err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	om.Record(time.Since(start), resp.StatusCode, err)
	return resp.StatusCode, data, err
}

func (s *Simulator) Report() {
	report := func(name string, om *OperationMetrics) {
		avg, p95 := om.Stats()
		log.Printf("%-14s total=%d ok=%d rejected=%d error=%d avg=%s p95=%s",
			name, om.Total, om.Success, om.Rejected, om.Error, avg, p95)
	}

	log.Println("simulation complete")
	report("create_session", &s.metrics.CreateSession)
	report("log_call", &s.metrics.LogCall)
	report("accept", &s.metrics.Accept)
	report("decline", &s.metrics.Decline)
	report("reschedule", &s.metrics.Reschedule)
	report("confirm", &s.metrics.Confirm)
	report("end_session", &s.metrics.EndSession)
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}
