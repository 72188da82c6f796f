// Package trip classifies the recoverable failures of discfolio's collaborators.
//
// The content provider and the contact submitter talk to a remote spreadsheet
// endpoint that can be slow, down, or answer with garbage. None of that should
// take the site down: the provider serves its built-in payload and the
// submitter reports a friendly message. Each such failure is recorded as a
// Trip so operators can see how often the site "tripped" and why.
package trip

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Trip types used across discfolio.
const (
	// TypeNetwork covers transport failures: timeouts, refused connections.
	TypeNetwork = "network"
	// TypeStatus covers non-2xx responses.
	TypeStatus = "status"
	// TypePayload covers undecodable bodies and payloads carrying an error field.
	TypePayload = "payload"
	// TypeDisabled is recorded when a feature is switched off in configuration.
	TypeDisabled = "disabled"
	// TypeValidation covers rejected user input.
	TypeValidation = "validation"
)

// Trip is a failure with enough context to debug it later.
//
// Example:
//
//	t := trip.NewStumble(trip.TypeStatus, "content endpoint returned 503",
//	    trip.Context{"url": src.URL, "status": 503})
//
//	if t.CanRecover() {
//	    // serve the fallback payload
//	}
type Trip struct {
	Type      string    // Failure category
	Message   string    // Human-readable description
	Context   Context   // Additional debugging information
	Timestamp time.Time // When the failure occurred
	Attempt   int       // Which attempt this was, when retried
	Severity  Severity  // How serious the failure is
	Cause     error     // Underlying error, if any
}

// Context carries structured debugging information.
type Context map[string]interface{}

// Severity indicates how a trip affects what the visitor sees.
type Severity int

const (
	// Stumble means a fallback was served; the visitor notices nothing.
	Stumble Severity = iota

	// Error means the request failed in a way the visitor sees, such as a
	// contact form that could not be delivered.
	Error

	// Fall means the component cannot work at all, such as a missing data file.
	Fall
)

func (s Severity) String() string {
	switch s {
	case Stumble:
		return "stumble"
	case Error:
		return "error"
	case Fall:
		return "fall"
	default:
		return "unknown"
	}
}

// NewTrip creates a trip with Error severity.
func NewTrip(errorType, message string, context Context) *Trip {
	return newTrip(errorType, message, context, Error)
}

// NewStumble creates a trip with Stumble severity.
func NewStumble(errorType, message string, context Context) *Trip {
	return newTrip(errorType, message, context, Stumble)
}

// NewFall creates a trip with Fall severity.
func NewFall(errorType, message string, context Context) *Trip {
	return newTrip(errorType, message, context, Fall)
}

func newTrip(errorType, message string, context Context, severity Severity) *Trip {
	return &Trip{
		Type:      errorType,
		Message:   message,
		Context:   context,
		Timestamp: time.Now(),
		Severity:  severity,
	}
}

// WithAttempt sets the attempt number.
func (t *Trip) WithAttempt(attemptNumber int) *Trip {
	t.Attempt = attemptNumber
	return t
}

// WithSeverity overrides the severity.
func (t *Trip) WithSeverity(severity Severity) *Trip {
	t.Severity = severity
	return t
}

// WithCause attaches the underlying error.
func (t *Trip) WithCause(err error) *Trip {
	t.Cause = err
	return t
}

// Error implements the error interface.
func (t *Trip) Error() string {
	if t.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", t.Type, t.Severity, t.Message, t.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", t.Type, t.Severity, t.Message)
}

// Unwrap returns the underlying error.
func (t *Trip) Unwrap() error { return t.Cause }

// CanRecover reports whether a fallback covered this failure.
func (t *Trip) CanRecover() bool {
	return t.Severity == Stumble
}

// IsFall reports whether the component is unusable.
func (t *Trip) IsFall() bool {
	return t.Severity == Fall
}

// GetContext returns a context value if present.
func (t *Trip) GetContext(key string) (interface{}, bool) {
	if t.Context == nil {
		return nil, false
	}
	val, exists := t.Context[key]
	return val, exists
}

// DetailedString describes the trip with its timestamp and context, keys sorted.
func (t *Trip) DetailedString() string {
	var details strings.Builder
	details.WriteString(t.Error())
	details.WriteString(fmt.Sprintf("\n  Time: %s", t.Timestamp.Format("15:04:05.000")))

	if t.Attempt > 0 {
		details.WriteString(fmt.Sprintf("\n  Attempt: %d", t.Attempt))
	}

	if len(t.Context) > 0 {
		keys := make([]string, 0, len(t.Context))
		for key := range t.Context {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		details.WriteString("\n  Context:")
		for _, key := range keys {
			details.WriteString(fmt.Sprintf("\n    %s: %v", key, t.Context[key]))
		}
	}

	return details.String()
}

// Handler collects trips for one component. It is safe for concurrent use
// because HTTP handlers record into it from many goroutines.
type Handler struct {
	mu        sync.Mutex
	component string
	trips     []*Trip
	stumbles  []*Trip
	policy    *Policy
}

// Policy bounds how many trips a handler keeps and which types count as recoverable.
type Policy struct {
	// StopOnFall makes ShouldContinue report false once a fall is recorded.
	StopOnFall bool

	// MaxStumbles is the stumble count above which ShouldContinue reports false.
	MaxStumbles int

	// RecoverableTypes lists types for which a fallback exists.
	RecoverableTypes []string

	// Retain caps each of the trip and stumble lists; older entries are dropped.
	Retain int
}

// DefaultPolicy returns the policy used by the content provider and submitter.
func DefaultPolicy() *Policy {
	return &Policy{
		StopOnFall:       true,
		MaxStumbles:      0,
		RecoverableTypes: []string{TypeNetwork, TypeStatus, TypePayload, TypeDisabled},
		Retain:           100,
	}
}

// NewHandler creates a handler for component.
func NewHandler(component string, policy *Policy) *Handler {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Handler{
		component: component,
		trips:     make([]*Trip, 0),
		stumbles:  make([]*Trip, 0),
		policy:    policy,
	}
}

// Component names the collaborator the handler records for.
func (h *Handler) Component() string { return h.component }

// Record adds a trip.
func (h *Handler) Record(trip *Trip) {
	if trip == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if trip.Severity == Stumble {
		h.stumbles = retain(append(h.stumbles, trip), h.policy.Retain)
	} else {
		h.trips = retain(append(h.trips, trip), h.policy.Retain)
	}
}

func retain(list []*Trip, limit int) []*Trip {
	if limit > 0 && len(list) > limit {
		return append([]*Trip(nil), list[len(list)-limit:]...)
	}
	return list
}

// ShouldContinue reports whether the component is still considered healthy.
func (h *Handler) ShouldContinue() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.policy.StopOnFall {
		for _, trip := range h.trips {
			if trip.IsFall() {
				return false
			}
		}
	}

	if h.policy.MaxStumbles > 0 && len(h.stumbles) > h.policy.MaxStumbles {
		return false
	}

	return true
}

// HasTrips reports whether any non-stumble was recorded.
func (h *Handler) HasTrips() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.trips) > 0
}

// HasStumbles reports whether any stumble was recorded.
func (h *Handler) HasStumbles() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stumbles) > 0
}

// GetTrips returns a copy of the recorded non-stumbles.
func (h *Handler) GetTrips() []*Trip {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Trip(nil), h.trips...)
}

// GetStumbles returns a copy of the recorded stumbles.
func (h *Handler) GetStumbles() []*Trip {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Trip(nil), h.stumbles...)
}

// Last returns the most recent trip of any severity.
func (h *Handler) Last() (*Trip, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var last *Trip
	for _, list := range [][]*Trip{h.trips, h.stumbles} {
		if n := len(list); n > 0 && (last == nil || list[n-1].Timestamp.After(last.Timestamp)) {
			last = list[n-1]
		}
	}
	return last, last != nil
}

// CanRecover reports whether errorType has a fallback under the policy.
func (h *Handler) CanRecover(errorType string) bool {
	for _, recoverableType := range h.policy.RecoverableTypes {
		if recoverableType == errorType {
			return true
		}
	}
	return false
}

// Summary is a one-line overview.
func (h *Handler) Summary() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.trips) == 0 && len(h.stumbles) == 0 {
		return fmt.Sprintf("[%s] no trips", h.component)
	}
	return fmt.Sprintf("[%s] %d trips, %d stumbles",
		h.component, len(h.trips), len(h.stumbles))
}

// DetailedReport lists every retained trip.
func (h *Handler) DetailedReport() string {
	summary := h.Summary()

	h.mu.Lock()
	defer h.mu.Unlock()

	var report strings.Builder
	report.WriteString(fmt.Sprintf("=== %s ===\n", h.component))
	report.WriteString(summary + "\n")

	if len(h.trips) > 0 {
		report.WriteString("\nTrips:\n")
		for i, trip := range h.trips {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, trip.DetailedString()))
		}
	}

	if len(h.stumbles) > 0 {
		report.WriteString("\nStumbles:\n")
		for i, stumble := range h.stumbles {
			report.WriteString(fmt.Sprintf("%d. %s\n", i+1, stumble.DetailedString()))
		}
	}

	return report.String()
}
