// Package jobs implements background job processing for the PawMarket API.
//
// The jobs package contains scheduled tasks that run independently of HTTP
// request handling.
//
// # Job Types
//
// Available background jobs:
//
//   - PayoutProcessor: Rolls up caregiver earnings and advances payout states
//
// # Job Lifecycle
//
// Jobs share a common lifecycle:
//
//	processor := jobs.NewPayoutProcessor(financeService, time.Hour)
//	processor.Start()
//	defer processor.Stop()
//
// Start is idempotent; Stop closes the job's stop channel and waits for the
// in-flight run to drain. RunOnce triggers a single cycle synchronously for
// CLI commands and tests.
//
// # Error Handling
//
// Jobs log errors but don't crash the application. A failed cycle is retried
// on the next tick.
package jobs
