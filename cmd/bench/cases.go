// README: Benchmark test cases; drives scripted booking conversations plus DB/Redis checks.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name  string
	Focus string
	Run   func(ctx context.Context, r *Runner) Result
}

type chatReply struct {
	ConversationID string   `json:"conversation_id"`
	Outcome        string   `json:"outcome"`
	Messages       []string `json:"messages"`
	Card           any      `json:"card"`
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name:  "Env: Postgres connect",
			Focus: "DB reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Env: Redis connect",
			Focus: "Redis reachable",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "FAIL", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: apply (optional)",
			Focus: "apply migration SQL",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if _, err := r.db.Exec(ctx, string(sql)); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Migration: bookings table exists",
			Focus: "schema present",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				var exists bool
				err := r.db.QueryRow(ctx,
					"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name='bookings')",
				).Scan(&exists)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if !exists {
					return Result{Status: "FAIL", Note: "missing table: bookings"}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "API: server reachable",
			Focus: "health endpoint",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				resp, err := r.httpc.Get(base + "/health")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				_ = resp.Body.Close()
				return Result{Status: "PASS", Latency: time.Since(start), Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			},
		},
		{
			Name:  "Chat: open conversation",
			Focus: "new id and prompt returned",
			Run: func(ctx context.Context, r *Runner) Result {
				start := time.Now()
				reply, status, err := r.chatTurn(ctx, "", "i want to book a flight")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK || reply.ConversationID == "" || len(reply.Messages) == 0 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d id=%q", status, reply.ConversationID)}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name:  "Chat: complete booking turn by turn",
			Focus: "slot filling reaches completed",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.scriptedBooking(ctx)
			},
		},
		{
			Name:  "Chat: cancel mid-conversation",
			Focus: "cancel interrupt ends the booking",
			Run: func(ctx context.Context, r *Runner) Result {
				reply, _, err := r.chatTurn(ctx, "", "book a trip")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				reply, status, err := r.chatTurn(ctx, reply.ConversationID, "cancel")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if status != http.StatusOK || reply.Outcome != "cancelled" {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d outcome=%q", status, reply.Outcome)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Chat: malformed body -> 400",
			Focus: "input validation",
			Run: func(ctx context.Context, r *Runner) Result {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/chat", strings.NewReader("{not json"))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: fmt.Sprintf("status=%d", resp.StatusCode)}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Consistency: cancelled booking archived",
			Focus: "bookings row written",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				reply, _, err := r.chatTurn(ctx, "", "book a trip")
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				id := reply.ConversationID
				if _, _, err := r.chatTurn(ctx, id, "cancel"); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				var n int64
				err = r.db.QueryRow(ctx,
					"SELECT count(*) FROM bookings WHERE conversation_id=$1 AND outcome='cancelled'", id,
				).Scan(&n)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if n == 0 {
					return Result{Status: "PENDING", Note: "no row; server may run without DATABASE_URL"}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name:  "Perf: chat turn throughput",
			Focus: "concurrent conversations",
			Run: func(ctx context.Context, r *Runner) Result {
				return r.perfChat(ctx)
			},
		},
	}
}

func (r *Runner) chatTurn(ctx context.Context, conversationID, message string) (chatReply, int, error) {
	body, _ := json.Marshal(map[string]string{
		"conversation_id": conversationID,
		"message":         message,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/chat", strings.NewReader(string(body)))
	if err != nil {
		return chatReply{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.httpc.Do(req)
	if err != nil {
		return chatReply{}, 0, err
	}
	defer resp.Body.Close()

	var reply chatReply
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(data, &reply); err != nil {
			return chatReply{}, resp.StatusCode, err
		}
	}
	return reply, resp.StatusCode, nil
}

// scriptedBooking answers every prompt in slot order. It works in both modes:
// with a recognizer the opening message pre-fills nothing here (plain city
// names), without one the bot asks for each slot anyway.
func (r *Runner) scriptedBooking(ctx context.Context) Result {
	start := time.Now()
	reply, _, err := r.chatTurn(ctx, "", "i want to book a flight")
	if err != nil {
		return Result{Status: "FAIL", Note: err.Error()}
	}
	id := reply.ConversationID

	replies := []string{"paris", "berlin", "2026-12-01", "2026-12-15", "500"}
	for _, msg := range replies {
		if reply.Outcome == "completed" {
			break
		}
		reply, _, err = r.chatTurn(ctx, id, msg)
		if err != nil {
			return Result{Status: "FAIL", Note: err.Error()}
		}
	}
	if reply.Outcome != "completed" {
		return Result{Status: "FAIL", Note: fmt.Sprintf("outcome=%q after script", reply.Outcome)}
	}
	if reply.Card == nil {
		return Result{Status: "FAIL", Note: "completed without card"}
	}
	return Result{Status: "PASS", Latency: time.Since(start)}
}

func (r *Runner) perfChat(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration)
	defer cancel()

	var ok, failed int64
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				reply, status, err := r.chatTurn(ctx, "", "book a flight")
				if err != nil || status != http.StatusOK || reply.ConversationID == "" {
					if ctx.Err() == nil {
						atomic.AddInt64(&failed, 1)
					}
					continue
				}
				atomic.AddInt64(&ok, 1)
			}
		}()
	}
	wg.Wait()

	total := atomic.LoadInt64(&ok)
	if total == 0 {
		return Result{Status: "FAIL", Note: "no successful turns"}
	}
	rate := float64(total) / r.cfg.Duration.Seconds()
	status := "PASS"
	if atomic.LoadInt64(&failed) > 0 {
		status = "PENDING"
	}
	return Result{Status: status, Note: fmt.Sprintf("turns=%d rate=%.0f/s failed=%d", total, rate, atomic.LoadInt64(&failed))}
}
