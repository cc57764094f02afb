// Package metrics exports index state as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/docindex/index"
)

const namespace = "docindex"

// Collector reports index size, version and stats at scrape time and counts
// change events as they happen.
type Collector struct {
	ix          *index.Index
	documents   *prometheus.Desc
	version     *prometheus.Desc
	stat        *prometheus.Desc
	changes     *prometheus.CounterVec
	unsubscribe func()
}

// NewCollector creates a collector over ix and starts counting its changes.
// Call Close to stop counting.
func NewCollector(ix *index.Index) *Collector {
	c := &Collector{
		ix: ix,
		documents: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "documents"),
			"Number of documents currently indexed",
			nil, nil,
		),
		version: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "index_version"),
			"Mutation counter of the index",
			nil, nil,
		),
		stat: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "stat"),
			"Collector statistics recorded on the index",
			[]string{"name"}, nil,
		),
		changes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "changes_total",
				Help:      "Total number of index change events",
			},
			[]string{"type"},
		),
	}
	c.unsubscribe = ix.OnChange(func(ev index.ChangeEvent) {
		c.changes.WithLabelValues(string(ev.Type)).Inc()
	})
	return c
}

// Register creates a collector over ix and registers it with reg.
func Register(reg prometheus.Registerer, ix *index.Index) (*Collector, error) {
	c := NewCollector(ix)
	if err := reg.Register(c); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.documents
	ch <- c.version
	ch <- c.stat
	c.changes.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.documents, prometheus.GaugeValue, float64(c.ix.Len()))
	ch <- prometheus.MustNewConstMetric(c.version, prometheus.CounterValue, float64(c.ix.Version()))
	for name, value := range c.ix.Stats().Snapshot() {
		ch <- prometheus.MustNewConstMetric(c.stat, prometheus.GaugeValue, float64(value), name)
	}
	c.changes.Collect(ch)
}

// Close stops counting change events.
func (c *Collector) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// NewServer returns an HTTP server exposing /metrics from g and a /health
// endpoint.
func NewServer(addr string, g prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","service":"docindex"}`))
	})

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
