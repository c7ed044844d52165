package analysis

import "fmt"

// ValidationError indicates the selected file is not a usable image. The submission
// state is left unchanged and no network call is issued.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid image: %s", e.Reason)
}

// NetworkError indicates the request could not be sent or the response could not be
// received, including a client-side timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("analysis service unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError indicates the analysis service answered with a non-2xx status.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("analysis service returned status %d", e.StatusCode)
}

// PartialResultError indicates a response was received but one of the two analysis
// sub-results reported an internal failure. The other sub-result still renders.
type PartialResultError struct {
	Part   string
	Detail string
}

func (e *PartialResultError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s analysis failed", e.Part)
	}
	return fmt.Sprintf("%s analysis failed: %s", e.Part, e.Detail)
}
