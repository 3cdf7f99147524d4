package jobs_test

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/jobs"
	"marketplace/internal/pkg/errs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxRelay struct {
	mock.Mock
	calls atomic.Int32
}

func (m *MockOutboxRelay) Handle(ctx context.Context, cmd commands.RelayOutboxCommand) (int, error) {
	m.calls.Add(1)
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOutboxRelayJob_Run(t *testing.T) {
	cmd, err := commands.NewRelayOutboxCommand(10)
	require.NoError(t, err)

	t.Run("relays a batch", func(t *testing.T) {
		relay := &MockOutboxRelay{}
		relay.On("Handle", mock.Anything, cmd).Return(3, nil).Once()

		jobs.NewOutboxRelayJob(relay, 10, quietLogger()).Run(cmd)

		relay.AssertExpectations(t)
	})

	t.Run("failure is logged not propagated", func(t *testing.T) {
		relay := &MockOutboxRelay{}
		relay.On("Handle", mock.Anything, cmd).Return(1, errors.New("broker down")).Once()

		assert.NotPanics(t, func() {
			jobs.NewOutboxRelayJob(relay, 10, quietLogger()).Run(cmd)
		})
		relay.AssertExpectations(t)
	})

	t.Run("bounded by a deadline", func(t *testing.T) {
		relay := &MockOutboxRelay{}
		relay.On("Handle", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), cmd).Return(0, nil).Once()

		jobs.NewOutboxRelayJob(relay, 10, quietLogger()).Run(cmd)

		relay.AssertExpectations(t)
	})
}

func TestOutboxRelayJob_Start(t *testing.T) {
	t.Run("invalid batch size", func(t *testing.T) {
		job := jobs.NewOutboxRelayJob(&MockOutboxRelay{}, 0, quietLogger())

		err := job.Start(jobs.EverySecond)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		job := jobs.NewOutboxRelayJob(&MockOutboxRelay{}, 10, quietLogger())

		assert.Error(t, job.Start("every now and then"))
	})
}

func TestJobManager_RunsRelayOnSchedule(t *testing.T) {
	relay := &MockOutboxRelay{}
	relay.On("Handle", mock.Anything, mock.Anything).Return(0, nil)

	manager := jobs.NewJobManager(relay, jobs.Config{RelayBatchSize: 50}, quietLogger())
	require.NoError(t, manager.StartAll())
	t.Cleanup(manager.StopAll)

	assert.Eventually(t, func() bool { return relay.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
