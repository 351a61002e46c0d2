package domain

// Monitoring defines an interface for collecting job execution metrics.
//
// Implementations of this interface can persist metrics in various ways, such as:
// - In-memory storage for simple debugging and development purposes.
// - Prometheus collectors for scraping.
// - A run-history database for audits.
type Monitoring interface {
	// SaveMetrics stores execution metrics derived from a job's state after it ran.
	//
	// Parameters:
	//   - dto: StateDTO instance containing the job's execution details and metadata.
	SaveMetrics(dto StateDTO)
}
