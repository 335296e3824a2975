package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/recommend", "404"))
	RecordAPIRequest("GET", "/recommend", 404, 3*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/recommend", "404")); got != before+1 {
		t.Errorf("requests = %v, want %v", got, before+1)
	}
}

func TestRecordBuild(t *testing.T) {
	RecordBuild(3, 42, 2*time.Second)
	if got := testutil.ToFloat64(EngineReady); got != 1 {
		t.Errorf("EngineReady = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CatalogMovies); got != 3 {
		t.Errorf("CatalogMovies = %v, want 3", got)
	}
	if got := testutil.ToFloat64(VocabularySize); got != 42 {
		t.Errorf("VocabularySize = %v, want 42", got)
	}
	if got := testutil.ToFloat64(EngineBuildDuration); got != 2 {
		t.Errorf("EngineBuildDuration = %v, want 2", got)
	}
}

func TestRecordQuery(t *testing.T) {
	c := QueriesTotal.WithLabelValues("search", "ok")
	before := testutil.ToFloat64(c)
	RecordQuery("search", "ok")
	RecordQuery("search", "ok")
	if got := testutil.ToFloat64(c); got != before+2 {
		t.Errorf("queries = %v, want %v", got, before+2)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}
