package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/discfolio/trip"
)

func validForm() Form {
	return Form{
		Name:        "  Ada  ",
		Email:       "ada@example.com",
		Instrument:  "Drum Set",
		InquiryType: "Lessons",
		Message:     "  Hello there \n",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		fields []string
	}{
		{"valid", func(*Form) {}, []string{}},
		{"blank name", func(f *Form) { f.Name = "   " }, []string{"name"}},
		{"missing email", func(f *Form) { f.Email = "" }, []string{"email"}},
		{"email without domain dot", func(f *Form) { f.Email = "ada@example" }, []string{"email"}},
		{"email with space", func(f *Form) { f.Email = "ada lovelace@example.com" }, []string{"email"}},
		{"email padded", func(f *Form) { f.Email = " ada@example.com" }, []string{"email"}},
		{"no instrument", func(f *Form) { f.Instrument = "" }, []string{"instrument"}},
		{"everything missing", func(f *Form) { *f = Form{} }, []string{"email", "instrument", "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			errs := Validate(f)
			assert.Equal(t, tt.fields, errs.Fields())
			assert.Equal(t, len(tt.fields) == 0, errs.OK())
		})
	}
}

func TestNormalized(t *testing.T) {
	f := validForm()
	f.Instrument = " Piano "
	n := f.Normalized()
	assert.Equal(t, "Ada", n.Name)
	assert.Equal(t, "Hello there", n.Message)
	assert.Equal(t, " Piano ", n.Instrument)
}

func TestDisabledSubmitter(t *testing.T) {
	for _, s := range []Submitter{
		NewSubmitter("https://example.com/exec", false, time.Second, nil),
		NewSubmitter("", true, time.Second, nil),
	} {
		res := s.Submit(context.Background(), validForm())
		assert.False(t, res.Success)
		assert.Equal(t, "Form submission is currently disabled", res.Message)
		assert.True(t, res.Disabled)
	}
}

func TestHTTPSubmitter_PostsPayload(t *testing.T) {
	type received struct {
		body   map[string]string
		header http.Header
		method string
	}
	got := make(chan received, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		got <- received{body: body, header: r.Header.Clone(), method: r.Method}
		// the remote answer is ignored, even an error page
		http.Error(w, "script error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSubmitter(srv.URL, true, time.Second, nil)
	res := s.Submit(context.Background(), validForm())

	require.True(t, res.Success)
	assert.Equal(t, "Thank you for your message! I will get back to you soon.", res.Message)
	assert.NotEmpty(t, res.ID)

	r := <-got
	assert.Equal(t, http.MethodPost, r.method)
	assert.Equal(t, "application/json", r.header.Get("Content-Type"))
	assert.Equal(t, res.ID, r.header.Get(SubmissionHeader))
	assert.Equal(t, map[string]string{
		"action":      "submitContact",
		"name":        "Ada",
		"email":       "ada@example.com",
		"instrument":  "Drum Set",
		"inquiryType": "Lessons",
		"message":     "Hello there",
	}, r.body)
}

func TestHTTPSubmitter_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	s := NewSubmitter(endpoint, true, time.Second, nil)
	res := s.Submit(context.Background(), validForm())

	assert.False(t, res.Success)
	assert.Equal(t, "There was an error submitting your form. Please try again or contact me directly via email.", res.Message)

	assert.False(t, res.Disabled)

	reporter, ok := s.(interface{ Trips() *trip.Handler })
	require.True(t, ok, "http submitter exposes its trips")
	assert.True(t, reporter.Trips().HasTrips())
	assert.Equal(t, "contact", reporter.Trips().Component())
}

func TestHTTPSubmitter_UniqueIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s := NewSubmitter(srv.URL, true, time.Second, nil)
	a := s.Submit(context.Background(), validForm())
	b := s.Submit(context.Background(), validForm())
	assert.NotEqual(t, a.ID, b.ID)
}
