package mux

import (
	"github.com/bmizerany/assert"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t, "K,2,10,6"))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
	assert.Equal(t, 0, expects.Seats)

	assertPost(t, ts, "/round", nil, nil, 201, signedToken(t, 3))

	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, 1, expects.Seats)
}
