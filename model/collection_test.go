package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, body string) *CollectionsEnvelope {
	t.Helper()
	var e CollectionsEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	return &e
}

func TestNames(t *testing.T) {
	names, err := envelope(t, `{"status":"success","collections":["a","b"]}`).Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	names, err = envelope(t, `{"status":"success","collections":[]}`).Names()
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)
}

func TestNamesRejectsMalformedCollections(t *testing.T) {
	bodies := []string{
		`{"status":"success","collections":"not-a-list"}`,
		`{"status":"success","collections":{"a":1}}`,
		`{"status":"success","collections":null}`,
		`{"status":"success"}`,
		`{"status":"success","collections":["a",2]}`,
		`{"status":"error","collections":["a"]}`,
	}
	for _, body := range bodies {
		_, err := envelope(t, body).Names()
		assert.ErrorIs(t, err, ErrInvalidCollections, body)
	}
}

func TestSucceeded(t *testing.T) {
	var nilEnvelope *CollectionsEnvelope
	assert.False(t, nilEnvelope.Succeeded())
	assert.True(t, envelope(t, `{"status":"success"}`).Succeeded())
	assert.False(t, envelope(t, `{"status":"error","message":"db down"}`).Succeeded())
}
