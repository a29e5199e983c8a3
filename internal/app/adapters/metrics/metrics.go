package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat4g_lines_processed_total",
		Help: "Incoming IRC lines by protocol command.",
	}, []string{"irc_command"})

	CommandRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat4g_command_runs_total",
		Help: "Built-in command invocations by name.",
	}, []string{"command"})

	TemplateRenders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat4g_template_renders_total",
		Help: "Template command renders, successful or not.",
	})

	HandlerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chat4g_handler_duration_seconds",
		Help:    "Wall time of one command handler invocation.",
		Buckets: prometheus.DefBuckets,
	})

	HandlerPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat4g_handler_panics_total",
		Help: "Handler invocations recovered at the dispatch boundary.",
	})

	RegistrySize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat4g_registry_viewers",
		Help: "Viewer aggregates currently held in the registry.",
	})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat4g_messages_sent_total",
		Help: "Outbound PRIVMSG lines.",
	})
)
