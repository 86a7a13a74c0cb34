// Package metrics defines the Prometheus collectors for QuickSplit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quicksplit"

// Metrics groups every collector the server records to.
type Metrics struct {
	ItemsAdded      prometheus.Counter
	EntriesRejected prometheus.Counter
	SessionsStarted prometheus.Counter
	SessionsEnded   prometheus.Counter
	RPCRequests     *prometheus.CounterVec
	RPCDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// activeSessions is polled on every scrape.
func New(reg prometheus.Registerer, activeSessions func() int) *Metrics {
	m := &Metrics{
		ItemsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_added_total",
			Help:      "Items admitted into a ledger.",
		}),
		EntriesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "item_entries_rejected_total",
			Help:      "Item submissions ignored for an empty name or non-positive price.",
		}),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Screen sessions started.",
		}),
		SessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_ended_total",
			Help:      "Screen sessions ended explicitly.",
		}),
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPCs handled, by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	reg.MustRegister(
		m.ItemsAdded,
		m.EntriesRejected,
		m.SessionsStarted,
		m.SessionsEnded,
		m.RPCRequests,
		m.RPCDuration,
	)

	if activeSessions != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Screen sessions currently held in memory.",
		}, func() float64 {
			return float64(activeSessions())
		}))
	}

	return m
}
