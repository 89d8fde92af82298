/*
* GoCsInfo, a directory of TLS cipher suites, RFCs and the cryptographic algorithms they are built from.
*
* Copyright (c) Siemens AG, 2016-2024.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/siemens/GoCsInfo/directory"
)

var (
	// SuitesRegistered counts cipher suites added to the catalog, by decomposition family
	SuitesRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "csinfo",
			Name:      "suites_registered_total",
			Help:      "Total number of cipher suites registered",
		},
		[]string{"family"},
	)

	// RegistrationFailures counts registry entries that could not be registered
	RegistrationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "csinfo",
			Name:      "registration_failures_total",
			Help:      "Total number of failed cipher suite registrations",
		},
	)

	// SuitesByTier holds the number of cipher suites per tier as of the last rating refresh
	SuitesByTier = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "csinfo",
			Name:      "suites_by_tier",
			Help:      "Number of cipher suites per security tier after the last rating refresh",
		},
		[]string{"tier"},
	)

	// RefreshDuration observes the duration of rating refreshes
	RefreshDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "csinfo",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of rating refreshes",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// ApiRequests counts API requests by route and status code
	ApiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "csinfo",
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"route", "code"},
	)

	// Ensure metrics are only registered once
	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry. It can be called multiple times.
func InitMetrics() {
	once.Do(func() {
		// Already registered collectors are not an error worth failing for
		_ = prometheus.DefaultRegisterer.Register(SuitesRegistered)
		_ = prometheus.DefaultRegisterer.Register(RegistrationFailures)
		_ = prometheus.DefaultRegisterer.Register(SuitesByTier)
		_ = prometheus.DefaultRegisterer.Register(RefreshDuration)
		_ = prometheus.DefaultRegisterer.Register(ApiRequests)
	})
}

// Observer feeds catalog activity into the metrics
type Observer struct{}

var _ directory.Observer = (*Observer)(nil)

// NewObserver registers the metrics and returns an observer to be passed to the catalog
func NewObserver() *Observer {
	InitMetrics()
	return &Observer{}
}

func (o *Observer) SuiteRegistered(family directory.Family) {
	SuitesRegistered.WithLabelValues(string(family)).Inc()
}

func (o *Observer) RegistrationFailed() {
	RegistrationFailures.Inc()
}

func (o *Observer) RatingsRefreshed(counts map[directory.Tier]int, duration time.Duration) {
	for _, t := range directory.Tiers() {
		SuitesByTier.WithLabelValues(t.String()).Set(float64(counts[t]))
	}
	SuitesByTier.WithLabelValues(directory.TierUnrated.String()).Set(float64(counts[directory.TierUnrated]))
	RefreshDuration.Observe(duration.Seconds())
}
