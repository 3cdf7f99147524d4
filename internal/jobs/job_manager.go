package jobs

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Config controls the scheduled jobs.
type Config struct {
	RelaySchedule  string
	RelayBatchSize int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	config         Config
	outboxRelayJob *OutboxRelayJob
}

func NewJobManager(relay OutboxRelay, config Config, logger *logrus.Logger) *JobManager {
	if config.RelaySchedule == "" {
		config.RelaySchedule = EverySecond
	}

	return &JobManager{
		config:         config,
		outboxRelayJob: NewOutboxRelayJob(relay, config.RelayBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(jm.config.RelaySchedule); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxRelayJob.Stop()
}
