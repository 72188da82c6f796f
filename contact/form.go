// Package contact validates and delivers the booking/lessons contact form.
package contact

import (
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is what a visitor submits.
type Form struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Instrument  string `json:"instrument"`
	InquiryType string `json:"inquiryType"`
	Message     string `json:"message"`
}

// Instruments offered on the form.
var Instruments = []string{"Drum Set", "Piano", "Guitar", "Music Theory", "Composition"}

// InquiryTypes offered on the form.
var InquiryTypes = []string{"Lessons", "Booking", "Other"}

// FieldErrors maps a field's json name to a message. Empty means valid.
type FieldErrors map[string]string

// OK reports whether no field failed.
func (fe FieldErrors) OK() bool { return len(fe) == 0 }

// Fields returns the failing field names, sorted.
func (fe FieldErrors) Fields() []string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Validate checks the required fields. Name must not be blank, email must not
// be blank and must look like an address, and an instrument must be chosen.
func Validate(f Form) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Please enter your name"
	}
	if strings.TrimSpace(f.Email) == "" || !emailPattern.MatchString(f.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if f.Instrument == "" {
		errs["instrument"] = "Please select an instrument"
	}
	return errs
}

// Normalized trims the free-text fields. Instrument and inquiry type come from
// fixed choices and are passed through.
func (f Form) Normalized() Form {
	return Form{
		Name:        strings.TrimSpace(f.Name),
		Email:       strings.TrimSpace(f.Email),
		Instrument:  f.Instrument,
		InquiryType: f.InquiryType,
		Message:     strings.TrimSpace(f.Message),
	}
}
