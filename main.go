package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"axle/pkg/api"
	"axle/pkg/config"
	"axle/pkg/engine"
	"axle/pkg/llm"
	_ "axle/pkg/llm/autoload" // 自動註冊 LLM Providers
	"axle/pkg/monitor"
	"axle/pkg/tools"
)

func main() {
	// --- 0. 讀取設定檔 ---
	cfg, sysCfg, err := config.Load("config.json", "system.json")
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v\n", err)
	}
	monitor.SetupSlog(sysCfg.LogLevel)

	// --- 1. 決策閘道設定 ---
	decider, err := llm.NewFromConfig(cfg.LLM, sysCfg)
	if err != nil {
		log.Fatalf("❌ Failed to init decision provider: %v\n", err)
	}

	// --- 2. 工具註冊 ---
	registry := tools.NewRegistry()
	if err := registry.Register(
		&tools.CurrencyTool{},
		&tools.LoanTool{},
		&tools.VehicleSpecsTool{},
	); err != nil {
		log.Fatalf("❌ Failed to register tools: %v\n", err)
	}

	// --- 3. Engine 初始化（使用 Builder 模式）---
	stats := monitor.NewRunStats()
	eng, err := engine.NewBuilder().
		WithDecider(decider).
		WithRegistry(registry).
		WithSystemConfig(sysCfg).
		WithStats(stats).
		Build()
	if err != nil {
		log.Fatalf("❌ Failed to build engine: %v\n", err)
	}

	// --- 4. 會話管理 ---
	sessions := engine.NewSessionManager(sysCfg.SessionStorage)
	conv, err := sessions.Get("cli")
	if err != nil {
		log.Fatalf("❌ Failed to load session: %v\n", err)
	}
	if cfg.SystemPrompt != "" {
		conv.EnsureSystemMessage(cfg.SystemPrompt)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 監看 system.json，變更時熱更新引擎參數。
	// 透過 UpdateSystemConfig 原子交換，絕不改寫進行中 run 持有的設定。
	go func() {
		for range config.Watch(ctx, "system.json") {
			next := config.LoadSystemConfig("system.json")
			eng.UpdateSystemConfig(next)
			monitor.SetupSlog(next.LogLevel)
			slog.Info("System config reloaded", "max_cycles", next.MaxCycles, "enable_tools", next.EnableTools)
		}
	}()

	fmt.Printf("axle ready — %d tools registered. Type a question, or /quit to exit.\n", registry.Len())

	lines := readLines(os.Stdin)
	for {
		fmt.Print("> ")
		var input string
		select {
		case <-ctx.Done():
			shutdown(stats)
			return
		case line, ok := <-lines:
			if !ok {
				shutdown(stats)
				return
			}
			input = strings.TrimSpace(line)
		}

		switch {
		case input == "":
			continue
		case input == "/quit", input == "/exit":
			shutdown(stats)
			return
		case input == "/stats":
			printStats(stats)
			continue
		}

		conv.Add(api.NewUserMessage(input))
		if err := eng.Continue(ctx, conv); err != nil {
			switch {
			case errors.Is(err, engine.ErrCycleLimitExceeded):
				fmt.Println("⚠️ Stopped: the decider kept requesting tools past the cycle limit.")
			case errors.Is(err, engine.ErrCycleDeadline):
				fmt.Println("⚠️ Stopped: a cycle overran its deadline.")
			case errors.Is(err, llm.ErrDecisionUnavailable):
				fmt.Printf("❌ Decision provider unavailable: %v\n", err)
			case errors.Is(err, context.Canceled):
				shutdown(stats)
				return
			default:
				fmt.Printf("❌ Run failed: %v\n", err)
			}
		}

		if last, ok := conv.Last(); ok && last.IsDecision() {
			fmt.Println(last.Content)
		}

		if err := sessions.Save("cli"); err != nil {
			slog.Error("Failed to persist session", "error", err)
		}
	}
}

// readLines pumps stdin lines into a channel so the REPL can also react to
// shutdown signals while blocked on input. A blocking stdin Read has no
// portable cancel, so on /quit or a signal the goroutine stays parked on its
// final Scan until process exit; the channel is simply abandoned.
func readLines(r *os.File) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			ch <- scanner.Text()
		}
	}()
	return ch
}

func printStats(stats *monitor.RunStats) {
	runs, cycles, byTool := stats.Snapshot()
	fmt.Printf("uptime %s, runs %d, cycles %d\n", stats.Uptime().Round(time.Second), runs, cycles)
	for name, st := range byTool {
		avg := "-"
		if st.Calls > 0 {
			avg = (st.Total / time.Duration(st.Calls)).String()
		}
		fmt.Printf("  %-18s calls=%d failures=%d avg=%s\n", name, st.Calls, st.Failures, avg)
	}
}

func shutdown(stats *monitor.RunStats) {
	runs, cycles, _ := stats.Snapshot()
	log.Printf("Bye! (%d runs, %d cycles)\n", runs, cycles)
}
