// Package ports declares the contracts between the application core and its
// adapters: repositories bound to a unit of work, the payment gateway, and
// event publishers used by the outbox relay.
package ports
