// Package order holds the Order aggregate and its lifecycle state machine.
//
// Status values move forward along
//
//	pending -> payment_confirmed -> processing -> ready -> out_for_delivery -> delivered -> completed
//
// driven by Actions. A TransitionTable decides which statuses each Action may
// start from; Order.Apply checks the action's flag guard first, then the table,
// and records a StatusChanged event for every successful transition.
//
// Cancelled and Rejected are terminal side exits. The default table grants
// no entry points for them; deployments opt in with CancelRule and RejectRule.
package order
