package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/discfolio/logging"
	"github.com/teranos/discfolio/trip"
)

// Visitor-facing outcome messages.
const (
	MessageDisabled = "Form submission is currently disabled"
	MessageSuccess  = "Thank you for your message! I will get back to you soon."
	MessageFailure  = "There was an error submitting your form. Please try again or contact me directly via email."
)

// SubmissionHeader carries a per-submission id so the spreadsheet side can
// deduplicate retries.
const SubmissionHeader = "X-Submission-Id"

const userAgent = "discfolio/1.0"

// Result is reported back to the visitor.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	ID       string `json:"id,omitempty"`
	Disabled bool   `json:"disabled,omitempty"` // switched off, not failed
}

// Submitter delivers forms.
type Submitter interface {
	Submit(ctx context.Context, f Form) Result
}

// NewSubmitter returns an HTTP submitter for endpoint, or a disabled submitter
// when enabled is false or endpoint is empty.
func NewSubmitter(endpoint string, enabled bool, timeout time.Duration, logger *slog.Logger) Submitter {
	logger = logging.NewComponentLogger(logger, "contact")
	if !enabled || endpoint == "" {
		return disabledSubmitter{logger: logger}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpSubmitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		trips:    trip.NewHandler("contact", nil),
		newID:    uuid.NewString,
	}
}

type disabledSubmitter struct {
	logger *slog.Logger
}

func (d disabledSubmitter) Submit(context.Context, Form) Result {
	d.logger.Info("form submission disabled")
	return Result{Success: false, Message: MessageDisabled, Disabled: true}
}

type httpSubmitter struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
	trips    *trip.Handler
	newID    func() string
}

// Trips exposes recorded delivery failures.
func (s *httpSubmitter) Trips() *trip.Handler { return s.trips }

type submission struct {
	Action string `json:"action"`
	Form
}

// Submit posts the form. The endpoint's answer is opaque; only a transport
// failure counts as an error.
func (s *httpSubmitter) Submit(ctx context.Context, f Form) Result {
	id := s.newID()
	if err := s.send(ctx, id, f.Normalized()); err != nil {
		s.trips.Record(trip.NewTrip(trip.TypeNetwork, "contact submission failed",
			trip.Context{"submission_id": id}).WithCause(err))
		s.logger.Error("form submission failed",
			logging.String("submission_id", id),
			logging.Error(err))
		return Result{Success: false, Message: MessageFailure, ID: id}
	}
	s.logger.Info("form submitted", logging.String("submission_id", id))
	return Result{Success: true, Message: MessageSuccess, ID: id}
}

func (s *httpSubmitter) send(ctx context.Context, id string, f Form) error {
	body, err := json.Marshal(submission{Action: "submitContact", Form: f})
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(SubmissionHeader, id)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send submission: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
