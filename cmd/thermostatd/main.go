package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"codeberg.org/mutker/thermostatd/internal/alarm"
	"codeberg.org/mutker/thermostatd/internal/annunciator"
	"codeberg.org/mutker/thermostatd/internal/config"
	"codeberg.org/mutker/thermostatd/internal/logger"
	"codeberg.org/mutker/thermostatd/internal/pid"
	"codeberg.org/mutker/thermostatd/internal/sensor"
	"codeberg.org/mutker/thermostatd/internal/tracelog"
	"github.com/google/uuid"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Setup(cfg.LogLevel, logger.IsService()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer pid.Remove()

	runID := uuid.NewString()
	logger.Info().
		Str("run_id", runID).
		Int("duration_ms", cfg.Duration).
		Msg("Starting measurement run")

	trace, err := tracelog.New(tracelog.Config{Dir: cfg.TraceDir})
	if err != nil {
		logger.Warn().Err(err).Msg("trace log unavailable, continuing without it")
		trace = tracelog.Noop()
	}
	defer trace.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixMilli()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Debug().Int64("seed", seed).Msg("RNG seeded")

	mailbox := &sensor.Mailbox{}
	alarmSignal := &alarm.Signal{}

	// The run deadline doubles as the cancellation signal for both workers.
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Duration)*time.Millisecond)
	defer cancel()
	go handleSignals(cancel)

	feed := sensor.NewFeed(mailbox, trace, rng)
	blinker := annunciator.New(alarmSignal, trace)
	evaluator := alarm.NewEvaluator(mailbox, alarmSignal, trace)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		feed.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		blinker.Run(ctx)
	}()

	evaluator.Run(ctx)

	cancel()
	wg.Wait()

	logger.Info().Str("run_id", runID).Msg("Exiting...")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
