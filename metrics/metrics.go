// Package metrics exports controller events as Prometheus metrics.
//
// Example usage:
//
//	m := metrics.New(prometheus.DefaultRegisterer, "posts")
//	ctrl, err := paging.New(opts, fetch, paging.WithObserver(m))
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nrfta/infinite-paging-go"
)

const namespace = "infinite_paging"

// Observer is a paging.Observer backed by Prometheus collectors. All
// collectors carry a constant "list" label naming the scrollable region.
type Observer struct {
	// Events counts controller events by kind.
	Events *prometheus.CounterVec

	// FetchDuration tracks page fetch latency by outcome
	// ("page_loaded", "end_of_data", "fetch_failed", "stale_discarded").
	FetchDuration *prometheus.HistogramVec

	// InFlight is the number of fetches dispatched and not yet completed.
	InFlight prometheus.Gauge

	// Items is the number of accumulated items in the current epoch.
	Items prometheus.Gauge

	// Epoch is the current reset epoch.
	Epoch prometheus.Gauge
}

// New creates an Observer and registers its collectors with reg. A nil reg
// leaves the collectors unregistered.
func New(reg prometheus.Registerer, list string) *Observer {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"list": list}

	return &Observer{
		Events: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Name:        "events_total",
				Help:        "Total number of infinite scroll controller events",
				ConstLabels: labels,
			},
			[]string{"event"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Name:        "fetch_duration_seconds",
				Help:        "Duration of page fetches in seconds",
				Buckets:     []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
		InFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "fetches_in_flight",
			Help:        "Number of page fetches currently in flight",
			ConstLabels: labels,
		}),
		Items: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "items",
			Help:        "Number of accumulated items in the current epoch",
			ConstLabels: labels,
		}),
		Epoch: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "epoch",
			Help:        "Current reset epoch",
			ConstLabels: labels,
		}),
	}
}

// Observe implements paging.Observer.
func (o *Observer) Observe(e paging.Event) {
	o.Events.WithLabelValues(string(e.Kind)).Inc()

	switch e.Kind {
	case paging.EventDispatched:
		o.InFlight.Inc()

	case paging.EventPageLoaded, paging.EventEndOfData, paging.EventFetchFailed:
		o.InFlight.Dec()
		o.FetchDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())
		o.Items.Set(float64(e.Total))

	case paging.EventStaleDiscarded:
		o.InFlight.Dec()
		o.FetchDuration.WithLabelValues(string(e.Kind)).Observe(e.Duration.Seconds())

	case paging.EventReset:
		o.Items.Set(0)
		o.Epoch.Set(float64(e.Epoch))

	case paging.EventStopped:
		o.InFlight.Set(0)
	}
}
