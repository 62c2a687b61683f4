package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.Signup("student")
	a.Signup("student")
	b.Signup("student")

	assert.Equal(t, 2.0, testutil.ToFloat64(a.signups.WithLabelValues("student")))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.signups.WithLabelValues("student")))
}

func TestDomainCounters(t *testing.T) {
	m := New()
	m.Application("accepted")
	m.Invitation("pending")
	m.Submission()
	m.Upload("badger")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.applications.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invitations.WithLabelValues("pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("badger")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("GET", "/projects/{id}", 200, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `vidzel_http_requests_total{method="GET",route="/projects/{id}",status="200"} 1`)
	assert.Contains(t, body, "vidzel_http_request_duration_seconds_bucket")
}
