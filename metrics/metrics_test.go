package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewPrometheus(reg).(*prometheusRecorder)

	rec.TournamentCreated()
	rec.RoundGenerated(1)
	rec.RoundGenerated(2)
	rec.ScoreRecorded(false)
	rec.ScoreRecorded(true)
	rec.RoundsDiscarded(2)
	rec.RoundsDiscarded(0)
	rec.OperationRejected("generate_round", "invalid_state")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.tournamentsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.roundsGenerated))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.highestRound))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.scoresRecorded.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.roundsDiscarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.rejections.WithLabelValues("generate_round", "invalid_state")))
}

func TestHandlerServesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg).TournamentCreated()

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "mexicano_tournaments_created_total 1"))
}
