package pipeline

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Store names used in PersistError and metrics labels.
const (
	StoreSupabase = "Supabase"
	StoreMongo    = "MongoDB"
)

// FetchFailedMessage is the only fetch failure text callers see; causes go to the log.
const FetchFailedMessage = "Failed to scrape the blog content"

// ErrStoreUnavailable marks a store whose client could not be built at startup.
var ErrStoreUnavailable = errors.New("store unavailable")

// ConfigError reports required settings that are empty.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return "Missing environment variables: " + strings.Join(e.Missing, ", ")
}

// InputError rejects a request before any outbound call, or after extraction finds no text.
type InputError struct {
	Status  int
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

var (
	errNoURL  = &InputError{Status: http.StatusBadRequest, Message: "No URL provided"}
	errNoText = &InputError{Status: http.StatusUnprocessableEntity, Message: "Could not extract text"}
)

// FetchError hides transport details behind FetchFailedMessage.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return FetchFailedMessage
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ServiceError wraps summarizer and translator failures.
type ServiceError struct {
	Stage string
	Err   error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// PersistError wraps a failed write to one of the two stores.
type PersistError struct {
	Store string
	Err   error
}

func (e *PersistError) Error() string {
	switch {
	case e.Store == StoreMongo && errors.Is(e.Err, ErrStoreUnavailable):
		return "MongoDB connection error: " + e.Err.Error()
	case e.Store == StoreMongo:
		return "MongoDB insert error: " + e.Err.Error()
	default:
		return e.Store + " error: " + e.Err.Error()
	}
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// StatusCode maps a pipeline error to its HTTP status.
func StatusCode(err error) int {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Status
	}
	return http.StatusInternalServerError
}

// outcome labels a finished run for metrics.
func outcome(err error) string {
	var (
		configErr  *ConfigError
		inputErr   *InputError
		fetchErr   *FetchError
		serviceErr *ServiceError
		persistErr *PersistError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &configErr):
		return "config"
	case errors.As(err, &inputErr):
		return "invalid_input"
	case errors.As(err, &fetchErr):
		return "fetch"
	case errors.As(err, &serviceErr):
		return strings.ToLower(serviceErr.Stage)
	case errors.As(err, &persistErr):
		return "persist_" + strings.ToLower(persistErr.Store)
	default:
		return "error"
	}
}
