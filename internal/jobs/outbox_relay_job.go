package jobs

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// EverySecond is the default relay schedule.
const EverySecond = "* * * * * *"

// OutboxRelay publishes a batch of pending outbox messages.
type OutboxRelay interface {
	Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error)
}

// OutboxRelayJob drains the outbox on a schedule. Runs never overlap: a tick
// that fires while the previous batch is still publishing is skipped.
type OutboxRelayJob struct {
	relay     OutboxRelay
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *logrus.Entry
}

func NewOutboxRelayJob(relay OutboxRelay, batchSize int, logger *logrus.Logger) *OutboxRelayJob {
	return &OutboxRelayJob{
		relay:     relay,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.WithField("component", "outbox_relay_job"),
	}
}

// Start schedules the relay with a six-field cron spec.
func (j *OutboxRelayJob) Start(spec string) error {
	cmd, err := commands.NewRelayOutboxCommand(j.batchSize)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(spec, func() { j.Run(cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", spec).Info("Outbox relay job started")
	return nil
}

// Run relays one batch.
func (j *OutboxRelayJob) Run(cmd commands.RelayOutboxCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	relayed, err := j.relay.Handle(ctx, cmd)
	if err != nil {
		j.logger.WithError(err).WithField("relayed", relayed).Error("Outbox relay failed")
		return
	}
	if relayed > 0 {
		j.logger.WithField("relayed", relayed).Debug("Outbox messages relayed")
	}
}

// Stop waits for a running batch to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Outbox relay job stopped")
}
