package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ValentinKolb/sKV/lib/store"
	"github.com/ValentinKolb/sKV/rpc/command"
	"github.com/ValentinKolb/sKV/rpc/transport"
	"github.com/VictoriaMetrics/metrics"
)

// Metrics holds the counters and gauges of one server. Every server gets its
// own metrics.Set so several servers can live in one process (tests).
// A nil *Metrics is valid and counts nothing.
type Metrics struct {
	set *metrics.Set

	getCommands         *metrics.Counter
	setCommands         *metrics.Counter
	decodeErrors        *metrics.Counter
	unsupportedCommands *metrics.Counter
	storeErrors         *metrics.Counter
}

// NewMetrics creates the command counters
func NewMetrics() *Metrics {
	set := metrics.NewSet()
	return &Metrics{
		set:                 set,
		getCommands:         set.NewCounter(`skv_commands_total{command="get"}`),
		setCommands:         set.NewCounter(`skv_commands_total{command="set"}`),
		decodeErrors:        set.NewCounter(`skv_decode_errors_total`),
		unsupportedCommands: set.NewCounter(`skv_unsupported_commands_total`),
		storeErrors:         set.NewCounter(`skv_store_errors_total`),
	}
}

// RegisterStore adds gauges for the number of keys and bytes held by s.
// A nil store reports zero.
func (m *Metrics) RegisterStore(s store.IStore) {
	m.set.NewGauge(`skv_store_keys`, func() float64 {
		return float64(storeStats(s).Keys())
	})
	m.set.NewGauge(`skv_store_bytes`, func() float64 {
		return float64(storeStats(s).Bytes())
	})
}

// storeStats returns empty stats for a nil or failing store
func storeStats(s store.IStore) store.Stats {
	if s == nil {
		return store.Stats{}
	}
	stats, err := s.Stats()
	if err != nil {
		return store.Stats{}
	}
	return stats
}

// RegisterTransport adds gauges for the connections of t
func (m *Metrics) RegisterTransport(t transport.IRPCServerTransport) {
	m.set.NewGauge(`skv_connections_active`, func() float64 {
		return float64(t.ActiveConnections())
	})
	m.set.NewGauge(`skv_connections_accepted_total`, func() float64 {
		return float64(t.AcceptedConnections())
	})
}

// WritePrometheus writes all server metrics plus the process metrics in
// Prometheus text format
func (m *Metrics) WritePrometheus(w io.Writer) {
	m.set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}

// Handler serves WritePrometheus over HTTP
func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		m.WritePrometheus(w)
	})
}

// --------------------------------------------------------------------------
// Counter helpers (nil safe)
// --------------------------------------------------------------------------

func (m *Metrics) command(t command.CommandType) {
	if m == nil {
		return
	}
	switch t {
	case command.CommandTGet:
		m.getCommands.Inc()
	case command.CommandTSet:
		m.setCommands.Inc()
	}
}

func (m *Metrics) decodeError() {
	if m != nil {
		m.decodeErrors.Inc()
	}
}

func (m *Metrics) unsupportedCommand() {
	if m != nil {
		m.unsupportedCommands.Inc()
	}
}

func (m *Metrics) storeError() {
	if m != nil {
		m.storeErrors.Inc()
	}
}

// --------------------------------------------------------------------------
// HTTP endpoint
// --------------------------------------------------------------------------

// metricsEndpoint serves /metrics on its own HTTP server
type metricsEndpoint struct {
	srv *http.Server
}

// startMetricsEndpoint starts serving m on addr in the background
func startMetricsEndpoint(addr string, m *Metrics) *metricsEndpoint {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		Logger.Infof("Serving metrics on http://%s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Errorf("Metrics endpoint failed: %v", err)
		}
	}()

	return &metricsEndpoint{srv: srv}
}

func (e *metricsEndpoint) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return e.srv.Shutdown(ctx)
}
