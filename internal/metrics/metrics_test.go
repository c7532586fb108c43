package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/profiles", "200"))
	ObserveRequest("GET", "/api/profiles", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/profiles", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveSimilarTier(t *testing.T) {
	before := testutil.ToFloat64(SimilarProfilesByTier.WithLabelValues("3"))
	ObserveSimilarTier(3)
	ObserveSimilarTier(3)
	assert.Equal(t, before+2, testutil.ToFloat64(SimilarProfilesByTier.WithLabelValues("3")))
}
