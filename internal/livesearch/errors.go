package livesearch

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when the query is blank.
var ErrEmptyQuery = errors.New("livesearch: empty query")

// ConfigurationError reports a required setting that is missing. It is raised
// before any network call is attempted.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("livesearch: %s is not configured", e.Setting)
}

// UpstreamError is returned for a non-2xx response from the search API. Body
// holds the raw response text.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("xAI API error: %d %s", e.StatusCode, e.Body)
}

// EnvironmentError reports that the network collaborator is unavailable.
type EnvironmentError struct {
	Reason string
}

func (e *EnvironmentError) Error() string {
	return "livesearch: " + e.Reason
}
