// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(&relayHandler, jobs.Config{RelayBatchSize: 100}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OutboxRelayJob runs every second by default. It claims a batch of pending
// outbox messages, publishes them to the configured broker and the vendor
// feed, and marks the published ones processed. A failed publish leaves the
// rest of the batch pending for the next tick, so delivery is at least once.
package jobs
