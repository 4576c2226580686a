package service

import "fmt"

// FallbackMessage is shown when a failure carries no server supplied message
const FallbackMessage = "Failed to load collections"

// ErrRes interface error message returned
type ErrRes struct {
	ErrStr string `json:"err_str"` //Error message
}

// Kind separates failures of the transport from failures reported by the backend
type Kind int

const (
	KindTransport Kind = iota + 1 //Network error, non-2xx status or unreadable body
	KindRejected                  //Backend answered with status != "success"
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRejected:
		return "rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by CollectionService. Error() is the human readable message shown to the user.
type Error struct {
	Kind    Kind
	Message string
	Status  int //HTTP status, 0 when no response was received
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
