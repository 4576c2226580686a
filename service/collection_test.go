package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"marketplace/metrics"
)

func backend(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, CollectionsPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func serviceError(t *testing.T, err error) *Error {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "error %v is not a *service.Error", err)
	return e
}

func TestGetAllCollectionsSuccess(t *testing.T) {
	srv := backend(t, http.StatusOK, `{"status":"success","collections":["a","b"]}`)
	s := NewCollectionService(srv.URL, nil, nil)

	envelope, err := s.GetAllCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "success", envelope.Status)
	assert.JSONEq(t, `["a","b"]`, string(envelope.Collections))

	names, err := envelope.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestGetAllCollectionsReturnsMalformedCollectionsUnchanged(t *testing.T) {
	srv := backend(t, http.StatusOK, `{"status":"success","collections":"not-a-list"}`)
	s := NewCollectionService(srv.URL, nil, nil)

	envelope, err := s.GetAllCollections(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `"not-a-list"`, string(envelope.Collections))
	_, err = envelope.Names()
	assert.Error(t, err)
}

func TestGetAllCollectionsDuplicateKeysLastWins(t *testing.T) {
	srv := backend(t, http.StatusOK, `{"status":"error","status":"success","collections":["x"],"collections":["a"]}`)
	s := NewCollectionService(srv.URL, nil, nil)

	envelope, err := s.GetAllCollections(context.Background())
	require.NoError(t, err)
	names, err := envelope.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, names)

	srv = backend(t, http.StatusOK, `{"status":"error","message":"first","message":"second"}`)
	_, err = NewCollectionService(srv.URL, nil, nil).GetAllCollections(context.Background())
	assert.Equal(t, "second", serviceError(t, err).Message)
}

func TestGetAllCollectionsRejected(t *testing.T) {
	srv := backend(t, http.StatusOK, `{"status":"error","message":"db down"}`)
	s := NewCollectionService(srv.URL, nil, nil)

	_, err := s.GetAllCollections(context.Background())
	e := serviceError(t, err)
	assert.Equal(t, KindRejected, e.Kind)
	assert.Equal(t, "db down", e.Error())
	assert.Equal(t, http.StatusOK, e.Status)
}

func TestGetAllCollectionsRejectedWithoutMessage(t *testing.T) {
	srv := backend(t, http.StatusOK, `{"status":"pending"}`)
	s := NewCollectionService(srv.URL, nil, nil)

	_, err := s.GetAllCollections(context.Background())
	assert.Equal(t, FallbackMessage, serviceError(t, err).Message)
}

func TestGetAllCollectionsHTTPError(t *testing.T) {
	cases := []struct {
		name, body, message string
	}{
		{"server message", `{"status":"error","message":"maintenance"}`, "maintenance"},
		{"plain text", `Internal Server Error`, FallbackMessage},
		{"non string message", `{"message":42}`, FallbackMessage},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := backend(t, http.StatusServiceUnavailable, c.body)
			_, err := NewCollectionService(srv.URL, nil, nil).GetAllCollections(context.Background())
			e := serviceError(t, err)
			assert.Equal(t, KindTransport, e.Kind)
			assert.Equal(t, http.StatusServiceUnavailable, e.Status)
			assert.Equal(t, c.message, e.Message)
		})
	}
}

func TestGetAllCollectionsMalformedBody(t *testing.T) {
	for _, body := range []string{`<html></html>`, `["a","b"]`, ``} {
		srv := backend(t, http.StatusOK, body)
		_, err := NewCollectionService(srv.URL, nil, nil).GetAllCollections(context.Background())
		e := serviceError(t, err)
		assert.Equal(t, KindTransport, e.Kind, body)
		assert.Equal(t, FallbackMessage, e.Message, body)
	}
}

func TestGetAllCollectionsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	m := metrics.New()
	_, err := NewCollectionService(url, zap.New(core), m).GetAllCollections(context.Background())

	e := serviceError(t, err)
	assert.Equal(t, KindTransport, e.Kind)
	assert.Equal(t, 0, e.Status)
	assert.Equal(t, FallbackMessage, e.Error())
	assert.NotNil(t, errors.Unwrap(e))

	failures := logs.FilterMessage("collections request failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, url+CollectionsPath, failures[0].ContextMap()["url"])

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `marketplace_collections_fetches_total{outcome="transport"} 1`)
}

func TestGetAllCollectionsCanceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewCollectionService(srv.URL, nil, nil).GetAllCollections(ctx)
	e := serviceError(t, err)
	assert.Equal(t, KindTransport, e.Kind)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "rejected", KindRejected.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestRejectedMetric(t *testing.T) {
	srv := backend(t, http.StatusOK, `{"status":"error"}`)
	m := metrics.New()
	_, _ = NewCollectionService(srv.URL, nil, m).GetAllCollections(context.Background())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `marketplace_collections_fetches_total{outcome="rejected"} 1`)
}
