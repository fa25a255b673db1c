// Package metrics defines the Prometheus metrics of the bank API.
//
// All metrics are registered with the default registry on package init and
// served by the /metrics route.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-petr/pet-bank/internal/domain"
)

const namespace = "petbank"

// Operation names used as the "operation" label.
const (
	OpCreateAccount = "create_account"
	OpAuthenticate  = "authenticate"
	OpDeposit       = "deposit"
	OpWithdraw      = "withdraw"
	OpApplyInterest = "apply_interest"
	OpTransfer      = "transfer"
)

// OperationsTotal counts core operations.
// Labels:
//   - operation: one of the Op* constants
//   - result: "ok" or a short error reason (e.g. "insufficient_balance")
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of core bank operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// HTTPRequestDuration measures request handling time.
// Labels:
//   - method, route: the gin route template (e.g. "/accounts/:number")
//   - status: the response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

var reasons = []struct {
	err    error
	reason string
}{
	{domain.ErrInvalidAmount, "invalid_amount"},
	{domain.ErrInsufficientBalance, "insufficient_balance"},
	{domain.ErrOverdraftExceeded, "overdraft_exceeded"},
	{domain.ErrAccountAlreadyExists, "duplicate_account"},
	{domain.ErrAccountNotFound, "account_not_found"},
	{domain.ErrUserNotFound, "unknown_user"},
	{domain.ErrWrongPassword, "invalid_credentials"},
	{domain.ErrUnsupportedOperation, "unsupported_operation"},
	{domain.ErrInvalidAccountKind, "invalid_account_type"},
	{domain.ErrInvalidOwner, "invalid_owner"},
}

// Reason returns the result label for err.
func Reason(err error) string {
	if err == nil {
		return "ok"
	}

	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}

	return "internal"
}

// Observe counts one execution of operation that finished with err.
func Observe(operation string, err error) {
	OperationsTotal.WithLabelValues(operation, Reason(err)).Inc()
}
