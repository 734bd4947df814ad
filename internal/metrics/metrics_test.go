package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventsCounter(t *testing.T) {
	before := testutil.ToFloat64(Events.WithLabelValues("onNodeClick"))
	Events.WithLabelValues("onNodeClick").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Events.WithLabelValues("onNodeClick")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	AssetsCopied.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "vango_sigma_assets_copied_total")
}
