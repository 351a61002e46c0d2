// Example: orbitcron with Prometheus metrics and the HTTP trigger.
// Jobs run every minute from the internal ticker and can be triggered with
//
//	curl -X POST 'localhost:8080/cron/run?force=true&password=demo'
//
// Metrics are exposed on localhost:8080/metrics.

package main

import (
	"context"
	"errors"
	"github.com/osmike/orbitcron"
	"github.com/osmike/orbitcron/internal/monitoring"
	"github.com/osmike/orbitcron/internal/server"
	"github.com/osmike/orbitcron/internal/ticker"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"math/rand"
	"os"
	"os/signal"
	"time"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	m := orbitcron.New(
		orbitcron.WithPassword("demo"),
		orbitcron.WithLogger(logger),
		orbitcron.WithMonitoring(monitoring.NewPrometheus(reg)),
	)

	for _, name := range []string{"job_A", "job_B", "job_C"} {
		_, err := m.CreateJob("* * * * *", name, flaky)
		if err != nil {
			logger.Fatal("Failed to create job", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tk := ticker.New(m, ticker.Config{}, logger)
	if err := tk.Start(ctx); err != nil {
		logger.Fatal("Failed to start ticker", zap.Error(err))
	}
	defer tk.Stop()

	srv := server.New(m, server.Config{Addr: ":8080", Path: "/cron", Gatherer: reg}, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func flaky(ctrl orbitcron.FnControl, _ ...any) error {
	time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
	if rand.Float32() < 0.2 {
		return errors.New("random failure")
	}
	return nil
}
