package detector

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"coffee-grader/internal/domain/entity"
)

func TestRemoteDetector_Detect(t *testing.T) {
	image := []byte("jpeg-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/x-image", r.Header.Get("Content-Type"))
		require.Equal(t, "secret", r.Header.Get("x-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, image, body)

		json.NewEncoder(w).Encode(entity.DetectorResult{
			TotalBeans:       320,
			Defects:          map[string]int{"full_black": 1, "broken": 2},
			Confidence:       0.93,
			ProcessingTimeMS: 1200,
		})
	}))
	defer srv.Close()

	d := NewRemoteDetector(srv.URL, "secret")
	res, err := d.Detect(context.Background(), image)
	require.NoError(t, err)
	require.Equal(t, 320, res.TotalBeans)
	require.Equal(t, 1, res.Defects["full_black"])
	require.Equal(t, 2, res.Defects["broken"])
	require.InDelta(t, 0.93, res.Confidence, 1e-9)
}

func TestRemoteDetector_NoAPIKeyHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["X-Api-Key"]
		require.False(t, present)
		json.NewEncoder(w).Encode(entity.DetectorResult{TotalBeans: 300})
	}))
	defer srv.Close()

	d := NewRemoteDetector(srv.URL, "")
	_, err := d.Detect(context.Background(), []byte("img"))
	require.NoError(t, err)
}

func TestRemoteDetector_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewRemoteDetector(srv.URL, "")
	_, err := d.Detect(context.Background(), []byte("img"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}

func TestRemoteDetector_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	d := NewRemoteDetector(srv.URL, "")
	_, err := d.Detect(context.Background(), []byte("img"))
	require.Error(t, err)
}
