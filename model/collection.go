package model

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// StatusSuccess is the only envelope status that carries collections
const StatusSuccess = "success"

// ErrInvalidCollections is returned when the collections field of a successful envelope is not a list of names
var ErrInvalidCollections = errors.New("invalid response format from server")

// CollectionsEnvelope is the body of GET /api/collections
type CollectionsEnvelope struct {
	Status      string          `json:"status"`                //"success" or an error status
	Collections json.RawMessage `json:"collections,omitempty"` //List of collection names, kept raw until validated
	Message     string          `json:"message,omitempty"`     //Server supplied error message
}

// Succeeded reports whether the server flagged the request as successful
func (e *CollectionsEnvelope) Succeeded() bool {
	return e != nil && e.Status == StatusSuccess
}

// Names validates the collections field and returns it as an ordered list.
// A missing field, a non-array value or a non-string element is an error, never a partial list.
func (e *CollectionsEnvelope) Names() ([]string, error) {
	if !e.Succeeded() || len(e.Collections) == 0 {
		return nil, ErrInvalidCollections
	}
	list := gjson.ParseBytes(e.Collections)
	if !list.IsArray() {
		return nil, ErrInvalidCollections
	}
	items := list.Array()
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Type != gjson.String {
			return nil, ErrInvalidCollections
		}
		names = append(names, item.String())
	}
	return names, nil
}
