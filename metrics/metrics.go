package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives tournament lifecycle events.
type Recorder interface {
	TournamentCreated()
	TournamentDeleted()
	RoundGenerated(roundNumber int)
	ScoreRecorded(cascaded bool)
	RoundsDiscarded(n int)
	OperationRejected(operation, reason string)
}

type prometheusRecorder struct {
	tournamentsCreated prometheus.Counter
	tournamentsDeleted prometheus.Counter
	roundsGenerated    prometheus.Counter
	highestRound       prometheus.Gauge
	scoresRecorded     *prometheus.CounterVec
	roundsDiscarded    prometheus.Counter
	rejections         *prometheus.CounterVec
}

// NewPrometheus registers the mexicano collectors on reg.
func NewPrometheus(reg prometheus.Registerer) Recorder {
	r := &prometheusRecorder{
		tournamentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mexicano",
			Name:      "tournaments_created_total",
			Help:      "Tournaments created.",
		}),
		tournamentsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mexicano",
			Name:      "tournaments_deleted_total",
			Help:      "Tournaments deleted.",
		}),
		roundsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mexicano",
			Name:      "rounds_generated_total",
			Help:      "Rounds generated, including rounds rebuilt after a past-round edit.",
		}),
		highestRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mexicano",
			Name:      "last_generated_round_number",
			Help:      "Round number of the most recently generated round.",
		}),
		scoresRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mexicano",
			Name:      "scores_recorded_total",
			Help:      "Match scores recorded, by whether the edit discarded later rounds.",
		}, []string{"cascaded"}),
		roundsDiscarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mexicano",
			Name:      "rounds_discarded_total",
			Help:      "Rounds dropped because an earlier round was edited.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mexicano",
			Name:      "operations_rejected_total",
			Help:      "Rejected operations by operation and reason.",
		}, []string{"operation", "reason"}),
	}
	reg.MustRegister(
		r.tournamentsCreated,
		r.tournamentsDeleted,
		r.roundsGenerated,
		r.highestRound,
		r.scoresRecorded,
		r.roundsDiscarded,
		r.rejections,
	)
	return r
}

func (r *prometheusRecorder) TournamentCreated() { r.tournamentsCreated.Inc() }
func (r *prometheusRecorder) TournamentDeleted() { r.tournamentsDeleted.Inc() }

func (r *prometheusRecorder) RoundGenerated(roundNumber int) {
	r.roundsGenerated.Inc()
	r.highestRound.Set(float64(roundNumber))
}

func (r *prometheusRecorder) ScoreRecorded(cascaded bool) {
	label := "false"
	if cascaded {
		label = "true"
	}
	r.scoresRecorded.WithLabelValues(label).Inc()
}

func (r *prometheusRecorder) RoundsDiscarded(n int) {
	if n > 0 {
		r.roundsDiscarded.Add(float64(n))
	}
}

func (r *prometheusRecorder) OperationRejected(operation, reason string) {
	r.rejections.WithLabelValues(operation, reason).Inc()
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

type noopRecorder struct{}

func NewNoop() Recorder { return noopRecorder{} }

func (noopRecorder) TournamentCreated() {}
func (noopRecorder) TournamentDeleted() {}
func (noopRecorder) RoundGenerated(int) {}
func (noopRecorder) ScoreRecorded(bool) {}
func (noopRecorder) RoundsDiscarded(int) {}
func (noopRecorder) OperationRejected(string, string) {}
