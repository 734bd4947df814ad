// Package metrics holds the Prometheus collectors for asset staging and the
// live event bridge.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AssetsCopied counts files written by the stager.
	AssetsCopied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vango_sigma",
		Name:      "assets_copied_total",
		Help:      "Number of component asset files copied into the host build directory.",
	})

	// AssetsMissing counts staging attempts whose source file was absent.
	AssetsMissing = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vango_sigma",
		Name:      "assets_missing_total",
		Help:      "Number of component asset files skipped because the source was missing.",
	})

	// Events counts browser events delivered to Go handlers, by event prop.
	Events = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vango_sigma",
		Name:      "events_total",
		Help:      "Number of component events dispatched through the live bridge.",
	}, []string{"event"})

	// Sessions tracks open live sessions.
	Sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vango_sigma",
		Name:      "live_sessions",
		Help:      "Number of open live websocket sessions.",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
