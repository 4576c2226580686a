package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"marketplace/metrics"
	"marketplace/model"
)

// CollectionsPath is appended to the configured API url
const CollectionsPath = "/api/collections"

const maxBodySize = 8 << 20

var errMalformedBody = errors.New("response body is not a JSON object")

// CollectionService is the client of the backend collections endpoint
type CollectionService struct {
	url     string
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewCollectionService creates a service for the backend at apiUrl. The call is bounded only by the caller's context.
func NewCollectionService(apiUrl string, logger *zap.Logger, m *metrics.Metrics) *CollectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollectionService{
		url:     apiUrl + CollectionsPath,
		client:  &http.Client{},
		logger:  logger.Named("collections"),
		metrics: m,
	}
}

// GetAllCollections issues one GET and returns the envelope unchanged when its status is "success"
func (s *CollectionService) GetAllCollections(ctx context.Context) (*model.CollectionsEnvelope, error) {
	start := time.Now()
	s.logger.Debug("fetching collections", zap.String("url", s.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, s.fail(ctx, start, &Error{Kind: KindTransport, Message: FallbackMessage, Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, s.fail(ctx, start, &Error{Kind: KindTransport, Message: FallbackMessage, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, s.fail(ctx, start, &Error{Kind: KindTransport, Message: FallbackMessage, Status: resp.StatusCode, Err: err})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.fail(ctx, start, &Error{
			Kind:    KindTransport,
			Message: messageOf(body),
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("unexpected status %d", resp.StatusCode),
		})
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		return nil, s.fail(ctx, start, &Error{Kind: KindTransport, Message: FallbackMessage, Status: resp.StatusCode, Err: errMalformedBody})
	}

	envelope := decodeEnvelope(body)
	if !envelope.Succeeded() {
		return nil, s.fail(ctx, start, &Error{
			Kind:    KindRejected,
			Message: messageOf(body),
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("backend status %q", envelope.Status),
		})
	}

	s.metrics.ObserveFetch(metrics.OutcomeSuccess, time.Since(start))
	s.logger.Debug("collections response",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return envelope, nil
}

func (s *CollectionService) fail(ctx context.Context, start time.Time, e *Error) error {
	outcome := metrics.OutcomeTransport
	switch {
	case ctx.Err() != nil:
		outcome = metrics.OutcomeCanceled
	case e.Kind == KindRejected:
		outcome = metrics.OutcomeRejected
	}
	s.metrics.ObserveFetch(outcome, time.Since(start))

	fields := []zap.Field{
		zap.String("url", s.url),
		zap.Stringer("kind", e.Kind),
		zap.String("message", e.Message),
		zap.Error(e.Err),
	}
	if e.Status != 0 {
		fields = append(fields, zap.Int("status", e.Status))
	}
	if outcome == metrics.OutcomeCanceled {
		s.logger.Debug("collections request canceled", fields...)
	} else {
		s.logger.Error("collections request failed", fields...)
	}
	return e
}

// lastFields returns the last occurrence of each top level key, matching encoding/json for duplicated keys
func lastFields(body []byte) map[string]gjson.Result {
	fields := make(map[string]gjson.Result)
	gjson.ParseBytes(body).ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}

// decodeEnvelope reads the envelope fields without forcing a shape on collections
func decodeEnvelope(body []byte) *model.CollectionsEnvelope {
	fields := lastFields(body)
	envelope := &model.CollectionsEnvelope{
		Status:  fields["status"].String(),
		Message: fields["message"].String(),
	}
	if collections, ok := fields["collections"]; ok {
		envelope.Collections = json.RawMessage(collections.Raw)
	}
	return envelope
}

// messageOf prefers the message field of a JSON body
func messageOf(body []byte) string {
	if msg := lastFields(body)["message"]; msg.Type == gjson.String && msg.String() != "" {
		return msg.String()
	}
	return FallbackMessage
}
