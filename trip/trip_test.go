package trip

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrip_Core tests core Trip functionality
func TestTrip_Core(t *testing.T) {
	context := Context{
		"component": "content",
		"url":       "https://example.invalid/exec",
	}

	trip := NewTrip(TypeStatus, "endpoint returned 500", context)

	assert.Equal(t, TypeStatus, trip.Type)
	assert.Equal(t, "endpoint returned 500", trip.Message)
	assert.Equal(t, context, trip.Context)
	assert.Equal(t, Error, trip.Severity)
	assert.WithinDuration(t, time.Now(), trip.Timestamp, time.Second)

	assert.Contains(t, trip.Error(), "endpoint returned 500")
	assert.Contains(t, trip.Error(), "status")
	assert.Contains(t, trip.Error(), "error")
}

func TestTrip_Severities(t *testing.T) {
	stumble := NewStumble(TypeNetwork, "timeout", nil)
	error_ := NewTrip(TypeValidation, "invalid email", nil)
	fall := NewFall(TypePayload, "data file unreadable", nil)

	assert.Equal(t, Stumble, stumble.Severity)
	assert.Equal(t, Error, error_.Severity)
	assert.Equal(t, Fall, fall.Severity)

	assert.True(t, stumble.CanRecover())
	assert.False(t, error_.CanRecover())
	assert.False(t, fall.CanRecover())

	assert.False(t, stumble.IsFall())
	assert.False(t, error_.IsFall())
	assert.True(t, fall.IsFall())
}

func TestTrip_Methods(t *testing.T) {
	trip := NewTrip("test", "Test message", Context{"b": 2, "a": "value"})

	trip.WithAttempt(3)
	assert.Equal(t, 3, trip.Attempt)

	trip.WithSeverity(Fall)
	assert.Equal(t, Fall, trip.Severity)

	val, exists := trip.GetContext("a")
	assert.True(t, exists)
	assert.Equal(t, "value", val)

	_, exists = trip.GetContext("missing")
	assert.False(t, exists)

	detailed := trip.DetailedString()
	assert.Contains(t, detailed, "Test message")
	assert.Contains(t, detailed, "Attempt: 3")
	assert.Contains(t, detailed, "a: value\n    b: 2")
}

func TestTrip_Cause(t *testing.T) {
	cause := errors.New("connection refused")
	trip := NewStumble(TypeNetwork, "fetch failed", nil).WithCause(cause)

	assert.ErrorIs(t, trip, cause)
	assert.Equal(t, "[network:stumble] fetch failed: connection refused", trip.Error())

	var target *Trip
	wrapped := fmt.Errorf("content: %w", trip)
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, TypeNetwork, target.Type)
}

func TestHandler_Basic(t *testing.T) {
	handler := NewHandler("content", DefaultPolicy())

	assert.True(t, handler.ShouldContinue())
	assert.Equal(t, "[content] no trips", handler.Summary())

	handler.Record(NewStumble(TypeNetwork, "timeout", nil))
	assert.True(t, handler.ShouldContinue())
	assert.True(t, handler.HasStumbles())
	assert.False(t, handler.HasTrips())

	handler.Record(NewFall(TypePayload, "unreadable", nil))
	assert.False(t, handler.ShouldContinue())
	assert.True(t, handler.HasTrips())
	assert.Equal(t, "[content] 1 trips, 1 stumbles", handler.Summary())

	last, ok := handler.Last()
	require.True(t, ok)
	assert.Equal(t, "unreadable", last.Message)

	report := handler.DetailedReport()
	assert.Contains(t, report, "=== content ===")
	assert.Contains(t, report, "Trips:")
	assert.Contains(t, report, "Stumbles:")

	handler.Record(nil)
	assert.Len(t, handler.GetTrips(), 1)
}

func TestHandler_MaxStumbles(t *testing.T) {
	handler := NewHandler("contact", &Policy{MaxStumbles: 2})
	for i := 0; i < 2; i++ {
		handler.Record(NewStumble(TypeDisabled, "off", nil))
	}
	assert.True(t, handler.ShouldContinue())
	handler.Record(NewStumble(TypeDisabled, "off", nil))
	assert.False(t, handler.ShouldContinue())
}

func TestHandler_Retain(t *testing.T) {
	handler := NewHandler("content", &Policy{Retain: 3})
	for i := 0; i < 10; i++ {
		handler.Record(NewStumble(TypeStatus, fmt.Sprintf("miss %d", i), nil))
	}
	stumbles := handler.GetStumbles()
	require.Len(t, stumbles, 3)
	assert.Equal(t, "miss 7", stumbles[0].Message)
	assert.Equal(t, "miss 9", stumbles[2].Message)
}

func TestHandler_ConcurrentRecord(t *testing.T) {
	handler := NewHandler("content", &Policy{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler.Record(NewStumble(TypeNetwork, "timeout", nil))
		}()
	}
	wg.Wait()
	assert.Len(t, handler.GetStumbles(), 50)
}

func TestPolicy_Default(t *testing.T) {
	policy := DefaultPolicy()
	handler := NewHandler("content", nil)

	assert.True(t, policy.StopOnFall)
	assert.Equal(t, 100, policy.Retain)
	assert.True(t, handler.CanRecover(TypeNetwork))
	assert.True(t, handler.CanRecover(TypePayload))
	assert.False(t, handler.CanRecover(TypeValidation))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "stumble", Stumble.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "fall", Fall.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
