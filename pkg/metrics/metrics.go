// Package metrics exposes prometheus metrics of the pipeline and the http surface
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morningdesk/morningdesk/pkg/domain"
)

const namespace = "morningdesk"

// Recorder holds the metrics registry. A nil Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	cycles          *prometheus.CounterVec
	cycleDuration   *prometheus.HistogramVec
	articles        *prometheus.CounterVec
	failedSources   prometheus.Counter
	reclassified    *prometheus.CounterVec
	failedBatches   prometheus.Counter
	clusters        prometheus.Counter
	clusteredItems  prometheus.Counter
	briefings       *prometheus.CounterVec
	events          *prometheus.CounterVec
	jobSkips        *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	sseListeners    prometheus.Gauge
	serviceInfo     *prometheus.GaugeVec
	lastCycleSecond prometheus.Gauge
}

// NewRecorder makes a recorder with its own registry, go and process collectors included
func NewRecorder(version string) *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.cycles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "cycles_total",
		Help: "Collection cycles by region and outcome",
	}, []string{"region", "outcome"})
	r.cycleDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "cycle_duration_seconds",
		Help:    "Collection cycle duration in seconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"region"})
	r.articles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "articles_total",
		Help: "Collected articles by result",
	}, []string{"result"})
	r.failedSources = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "failed_sources_total",
		Help: "Sources that failed during collection",
	})
	r.reclassified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "escalated_articles_total",
		Help: "Articles sent to the judge by result",
	}, []string{"result"})
	r.failedBatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "escalation_failed_batches_total",
		Help: "Judge batches that failed",
	})
	r.clusters = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "clusters_formed_total",
		Help: "Clusters formed",
	})
	r.clusteredItems = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace, Name: "clustered_articles_total",
		Help: "Articles stamped with a cluster id",
	})
	r.briefings = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "briefings_total",
		Help: "Briefings by slot and result",
	}, []string{"slot", "result"})
	r.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "events_total",
		Help: "Events emitted on the bus",
	}, []string{"type"})
	r.jobSkips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "job_skips_total",
		Help: "Triggers skipped because a run was in progress",
	}, []string{"job"})
	r.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "status"})
	r.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Name: "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	r.sseListeners = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "sse_listeners",
		Help: "Connected event stream clients",
	})
	r.serviceInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Name: "service_info",
		Help: "Service information",
	}, []string{"version"})
	r.lastCycleSecond = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Name: "last_cycle_timestamp_seconds",
		Help: "Unix time of the last finished collection cycle",
	})

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.cycles, r.cycleDuration, r.articles, r.failedSources, r.reclassified, r.failedBatches,
		r.clusters, r.clusteredItems, r.briefings, r.events, r.jobSkips, r.httpRequests, r.httpDuration,
		r.sseListeners, r.serviceInfo, r.lastCycleSecond,
	)
	r.serviceInfo.WithLabelValues(version).Set(1)
	return r
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveCycle records the outcome of one collection cycle
func (r *Recorder) ObserveCycle(region domain.Region, res domain.CycleResult, d time.Duration) {
	if r == nil {
		return
	}
	if res.Skipped {
		r.cycles.WithLabelValues(string(region), "skipped").Inc()
		r.jobSkips.WithLabelValues("collect").Inc()
		return
	}
	r.cycles.WithLabelValues(string(region), "done").Inc()
	r.cycleDuration.WithLabelValues(string(region)).Observe(d.Seconds())
	r.articles.WithLabelValues("saved").Add(float64(res.Saved))
	r.articles.WithLabelValues("duplicate").Add(float64(res.Duplicates))
	r.articles.WithLabelValues("unclassified").Add(float64(res.Unclassified))
	r.articles.WithLabelValues("failed").Add(float64(res.Failed))
	r.failedSources.Add(float64(res.FailedSources))
	r.lastCycleSecond.SetToCurrentTime()
}

// ObserveReclassify records one escalation pass
func (r *Recorder) ObserveReclassify(res domain.ReclassifyResult) {
	if r == nil {
		return
	}
	if res.Busy {
		r.jobSkips.WithLabelValues("classify").Inc()
		return
	}
	r.reclassified.WithLabelValues("classified").Add(float64(res.Classified))
	r.reclassified.WithLabelValues("skipped").Add(float64(res.Skipped))
	r.failedBatches.Add(float64(res.FailedBatches))
}

// ObserveCluster records one clustering run
func (r *Recorder) ObserveCluster(res domain.ClusterResult) {
	if r == nil {
		return
	}
	if res.Busy {
		r.jobSkips.WithLabelValues("cluster").Inc()
		return
	}
	r.clusters.Add(float64(res.ClustersFormed))
	r.clusteredItems.Add(float64(res.ArticlesUpdated))
}

// ObserveBriefings records one briefing pass
func (r *Recorder) ObserveBriefings(slot domain.BriefingSlot, res domain.BriefingResult) {
	if r == nil {
		return
	}
	if res.Busy {
		r.jobSkips.WithLabelValues("briefing").Inc()
		return
	}
	r.briefings.WithLabelValues(string(slot), "generated").Add(float64(res.Generated))
	r.briefings.WithLabelValues(string(slot), "skipped").Add(float64(res.Skipped))
	r.briefings.WithLabelValues(string(slot), "failed").Add(float64(res.Failed))
}

// ObserveEvent counts an emitted event, usable as a bus listener
func (r *Recorder) ObserveEvent(ev domain.Event) {
	if r == nil {
		return
	}
	r.events.WithLabelValues(string(ev.Type)).Inc()
}

// SSEConnected tracks event stream clients, call the returned func on disconnect
func (r *Recorder) SSEConnected() func() {
	if r == nil {
		return func() {}
	}
	r.sseListeners.Inc()
	return r.sseListeners.Dec
}

// Middleware counts requests and their duration
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		st := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, req)
		r.httpRequests.WithLabelValues(req.Method, strconv.Itoa(sw.status)).Inc()
		r.httpDuration.WithLabelValues(req.Method).Observe(time.Since(st).Seconds())
	})
}

// Handler returns the prometheus scrape handler
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Flush lets streaming handlers behind the middleware flush
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the wrapped writer to http.ResponseController
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
