// Package metrics holds the service's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vietrip"

var (
	realtimePublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_events_published_total",
			Help:      "Change events published by this instance.",
		},
		[]string{"table"},
	)

	realtimeDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_events_delivered_total",
			Help:      "Change events handed to subscriptions.",
		},
		[]string{"table"},
	)

	realtimeDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_events_dropped_total",
			Help:      "Change events dropped because a subscription buffer was full.",
		},
		[]string{"table"},
	)

	realtimeSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_subscriptions",
			Help:      "Open change subscriptions.",
		},
	)

	liveRefetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "livequery_refetches_total",
			Help:      "Live query fetches by outcome (applied, stale, error).",
		},
		[]string{"outcome"},
	)

	visitReorders = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visit_reorders_total",
			Help:      "Committed visit reorder transactions.",
		},
	)

	legacyRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "legacy_migration_records_total",
			Help:      "Legacy records processed by entity and outcome.",
		},
		[]string{"entity", "outcome"},
	)
)

func EventPublished(table string) { realtimePublished.WithLabelValues(table).Inc() }
func EventDelivered(table string) { realtimeDelivered.WithLabelValues(table).Inc() }
func EventDropped(table string)   { realtimeDropped.WithLabelValues(table).Inc() }

func SubscriptionOpened() { realtimeSubscriptions.Inc() }
func SubscriptionClosed() { realtimeSubscriptions.Dec() }

func Refetch(outcome string) { liveRefetches.WithLabelValues(outcome).Inc() }

func VisitReordered() { visitReorders.Inc() }

func LegacyRecord(entity, outcome string) { legacyRecords.WithLabelValues(entity, outcome).Inc() }
