// Example: orbitcron + SQLite run history.
// A command job runs on every forced pass and each run is appended to data.db.

package main

import (
	"context"
	"fmt"
	"github.com/osmike/orbitcron"
	"github.com/osmike/orbitcron/internal/command"
	"github.com/osmike/orbitcron/internal/monitoring"
	"log"
)

const dbName = "data.db"

func main() {
	history, err := monitoring.NewHistory(dbName, nil)
	if err != nil {
		log.Fatalf("Failed to open history: %v", err)
	}
	defer history.Close()

	m := orbitcron.New(orbitcron.WithMonitoring(history))

	_, err = m.CreateJob("0 * * * *", "disk_usage", command.Exec, command.Args([]string{"df", "-h", "."})...)
	if err != nil {
		log.Fatalf("Failed to create job: %v", err)
	}
	_, err = m.CreateJob("30 2 * * *", "always_fails", command.Exec, command.Args([]string{"sh", "-c", "exit 3"})...)
	if err != nil {
		log.Fatalf("Failed to create job: %v", err)
	}

	for i := 0; i < 3; i++ {
		report := m.RunDueJobs(context.Background(), true)
		fmt.Printf("[orbitcron] pass %d: %d/%d executed, failed: %v\n", i+1, report.ExecutedJobsCount, report.TotalJobs, report.Failed)
	}

	runs, err := history.Recent(context.Background(), "", 10)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	for _, r := range runs {
		fmt.Printf("#%d %-12s %-9s %v %s\n", r.ID, r.JobName, r.Result, r.Duration, r.Error)
	}
}
