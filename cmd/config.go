package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// Supported EVENTS_BROKER values. With BrokerNone events only reach the
// vendor websocket feed.
const (
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
	BrokerNone     = "none"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret           string
	PaystackSecretKey   string
	PaystackBaseURL     string
	PaystackCallbackURL string

	EventsBroker     string
	KafkaBrokers     string
	KafkaTopic       string
	RabbitMQURL      string
	RabbitMQExchange string

	DefaultTimeZone      string
	OrderCancellableFrom string
	OrderRejectableFrom  string

	OutboxRelaySchedule  string
	OutboxRelayBatchSize int
	LogLevel             string
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location resolves DEFAULT_TIME_ZONE, falling back to UTC when unset.
func (c Config) Location() (*time.Location, error) {
	if c.DefaultTimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.DefaultTimeZone)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("DEFAULT_TIME_ZONE", err)
	}
	return loc, nil
}

// TransitionTable extends the default lifecycle with the cancel and reject
// entry states listed in ORDER_CANCELLABLE_FROM and ORDER_REJECTABLE_FROM
// as comma separated status codes. Both are empty by default.
func (c Config) TransitionTable() (order.TransitionTable, error) {
	cancellable, cancelErr := parseStatuses("ORDER_CANCELLABLE_FROM", c.OrderCancellableFrom)
	rejectable, rejectErr := parseStatuses("ORDER_REJECTABLE_FROM", c.OrderRejectableFrom)
	if err := errors.Join(cancelErr, rejectErr); err != nil {
		return order.TransitionTable{}, err
	}

	return order.NewTransitionTable(append(order.DefaultRules(),
		order.CancelRule(cancellable...),
		order.RejectRule(rejectable...),
	)...)
}

// Brokers splits KAFKA_BROKERS.
func (c Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseStatuses(name, value string) ([]order.Status, error) {
	var statuses []order.Status
	for _, code := range strings.Split(value, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		s, err := order.StatusFromCode(code)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}
