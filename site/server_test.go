package site

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/discfolio"
	"github.com/teranos/discfolio/contact"
	"github.com/teranos/discfolio/content"
)

type staticData content.Payload

func (d staticData) AllData(context.Context) content.Payload { return content.Payload(d) }

type stubSubmitter struct {
	mu     sync.Mutex
	result contact.Result
	got    []contact.Form
}

func (s *stubSubmitter) Submit(_ context.Context, f contact.Form) contact.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, f)
	return s.result
}

func (s *stubSubmitter) forms() []contact.Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]contact.Form(nil), s.got...)
}

func testPayload() content.Payload {
	return content.Payload{
		Biography: content.Biography{Text: "Drummer & educator."},
		Discography: []content.Album{
			{Title: "First Light", Year: "2021", Association: "Trio"},
		},
		Events: []content.Event{
			{Title: "Jazz Night", Location: "Blue Room, Portland OR", Date: "2026-11-01"},
			{Title: "Clinic", Notes: "Bring sticks"},
		},
		Videos: []content.Video{
			{ID: "v0", Title: "Zero"},
			{ID: "v1", Title: "One"},
			{ID: "v2", Title: "Two"},
			{ID: "v3", Title: "Three"},
			{ID: "v4", Title: "Four"},
			{ID: "v5", Title: "Five"},
		},
	}
}

func newTestServer(t *testing.T, sub contact.Submitter) *httptest.Server {
	t.Helper()
	cfg := discfolio.DefaultFrameConfig()
	cfg.Width, cfg.Height = 320, 180
	srv := httptest.NewServer(NewServer(Options{
		Owner:   "Test Player",
		Content: staticData(testPayload()),
		Contact: sub,
		Frame:   cfg,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body healthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Empty(t, body.Components)
}

func getHealth(t *testing.T, srv *httptest.Server) healthStatus {
	t.Helper()
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body healthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealth_ReportsRecordedTrips(t *testing.T) {
	gone := httptest.NewServer(http.NotFoundHandler())
	endpoint := gone.URL
	gone.Close()

	provider := content.NewProvider(content.Options{
		Source:  content.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")},
		Enabled: true,
	})
	sub := contact.NewSubmitter(endpoint, true, time.Second, nil)
	srv := httptest.NewServer(NewServer(Options{Content: provider, Contact: sub}))
	defer srv.Close()

	t.Run("clean before any failure", func(t *testing.T) {
		body := getHealth(t, srv)
		assert.Equal(t, "ok", body.Status)
		require.Contains(t, body.Components, "content")
		require.Contains(t, body.Components, "contact")
		assert.Equal(t, "[contact] no trips", body.Components["contact"].Summary)
		assert.True(t, body.Components["content"].Healthy)
	})

	provider.AllData(context.Background())
	res := sub.Submit(context.Background(), contact.Form{Name: "Ada", Email: "ada@example.com", Instrument: "Piano"})
	require.False(t, res.Success)

	t.Run("failures show up", func(t *testing.T) {
		body := getHealth(t, srv)
		assert.Equal(t, "degraded", body.Status)

		c := body.Components["content"]
		assert.False(t, c.Healthy)
		assert.Equal(t, 1, c.Trips)
		assert.Contains(t, c.Last, "content file missing")

		sent := body.Components["contact"]
		assert.True(t, sent.Healthy)
		assert.Equal(t, 1, sent.Trips)
		assert.Equal(t, "[contact] 1 trips, 0 stumbles", sent.Summary)
		assert.Contains(t, sent.Last, "contact submission failed")
	})
}

func TestPage(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	page := buf.String()

	t.Run("title and selection", func(t *testing.T) {
		assert.Contains(t, page, "<title>Test Player</title>")
		assert.Contains(t, page, "TEST PLAYER")
		assert.Contains(t, page, `<strong id="selected-title">Four</strong>`)
		assert.Contains(t, page, "https://img.youtube.com/vi/v4/maxresdefault.jpg")
	})

	t.Run("poster inlined", func(t *testing.T) {
		assert.Contains(t, page, `src="data:image/png;base64,`)
	})

	t.Run("content escaped", func(t *testing.T) {
		assert.Contains(t, page, "Drummer &amp; educator.")
	})

	t.Run("events render present fields only", func(t *testing.T) {
		assert.Contains(t, page, discfolio.MapsURL("Blue Room, Portland OR"))
		assert.Contains(t, page, "Bring sticks")
		assert.Equal(t, 1, strings.Count(page, "maps.google.com"))
	})

	t.Run("form choices", func(t *testing.T) {
		for _, inst := range contact.Instruments {
			assert.Contains(t, page, "<option>"+inst+"</option>")
		}
	})
}

func TestPage_WritesNothingToFilmDir(t *testing.T) {
	film := filepath.Join(t.TempDir(), "film")
	cfg := discfolio.DefaultFrameConfig()
	cfg.Width, cfg.Height = 320, 180
	cfg.OutputDir = film
	srv := httptest.NewServer(NewServer(Options{Content: staticData(testPayload()), Frame: cfg}))
	defer srv.Close()

	for _, path := range []string{"/", "/carousel.png", "/api/carousel"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
	assert.NoDirExists(t, film)
}

func TestPage_NoVideos(t *testing.T) {
	srv := httptest.NewServer(NewServer(Options{Owner: "Solo", Content: staticData(content.Payload{})}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, buf.String(), "No videos yet.")
	assert.Contains(t, buf.String(), "No upcoming events.")
}

func TestData(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/api/data")
	require.NoError(t, err)
	defer resp.Body.Close()

	var got content.Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, testPayload(), got)
}

func TestCarouselState(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name     string
		query    string
		status   int
		index    int
		id       string
		hasLabel bool
	}{
		{"initial", "", http.StatusOK, 4, "v4", true},
		{"one step back", "?rotation=0.96", http.StatusOK, 3, "v3", true},
		{"between discs", "?rotation=0.25", http.StatusOK, 4, "v4", false},
		{"full turn", "?rotation=6.283185307179586", http.StatusOK, 4, "v4", true},
		{"garbage", "?rotation=abc", http.StatusBadRequest, 0, "", false},
		{"nan", "?rotation=NaN", http.StatusBadRequest, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/carousel" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
			if tt.status != http.StatusOK {
				return
			}
			var state carouselState
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
			assert.Equal(t, tt.index, state.Index)
			assert.Equal(t, tt.id, state.ID)
			assert.Equal(t, discfolio.EmbedURL(tt.id), state.Embed)
			assert.Equal(t, tt.hasLabel, state.Label)
		})
	}
}

func TestCarouselState_Empty(t *testing.T) {
	srv := httptest.NewServer(NewServer(Options{Content: staticData(content.Payload{})}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/carousel")
	require.NoError(t, err)
	defer resp.Body.Close()

	var state carouselState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Equal(t, -1, state.Index)
	assert.Empty(t, state.ID)
}

func TestPoster(t *testing.T) {
	srv := newTestServer(t, nil)

	t.Run("requested size", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/carousel.png?rotation=1.5&width=200&height=100")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		img, err := png.Decode(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, 200, img.Bounds().Dx())
		assert.Equal(t, 100, img.Bounds().Dy())
	})

	t.Run("clamped size", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/carousel.png?width=1&height=99999")
		require.NoError(t, err)
		defer resp.Body.Close()

		img, err := png.Decode(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, minPosterSide, img.Bounds().Dx())
		assert.Equal(t, maxPosterSide, img.Bounds().Dy())
	})

	t.Run("bad rotation", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/carousel.png?rotation=x")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestWatch(t *testing.T) {
	srv := newTestServer(t, nil)
	client := &http.Client{CheckRedirect: noRedirect}

	t.Run("known video", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/watch/v2")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://www.youtube.com/embed/v2?autoplay=1", resp.Header.Get("Location"))
	})

	t.Run("unknown video", func(t *testing.T) {
		resp, err := client.Get(srv.URL + "/watch/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func postJSON(t *testing.T, endpoint string, v any) (*http.Response, contactResponse) {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out contactResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestContact(t *testing.T) {
	valid := contact.Form{Name: "Ada", Email: "ada@example.com", Instrument: "Piano", InquiryType: "Lessons", Message: "Hi"}

	t.Run("success", func(t *testing.T) {
		sub := &stubSubmitter{result: contact.Result{Success: true, Message: contact.MessageSuccess, ID: "abc"}}
		srv := newTestServer(t, sub)

		resp, out := postJSON(t, srv.URL+"/api/contact", valid)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, out.Success)
		assert.Equal(t, "abc", out.ID)
		require.Len(t, sub.forms(), 1)
		assert.Equal(t, valid, sub.forms()[0])
	})

	t.Run("validation errors never reach the submitter", func(t *testing.T) {
		sub := &stubSubmitter{}
		srv := newTestServer(t, sub)

		resp, out := postJSON(t, srv.URL+"/api/contact", contact.Form{Email: "nope"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, out.Success)
		assert.Equal(t, []string{"email", "instrument", "name"}, out.Errors.Fields())
		assert.Empty(t, sub.forms())
	})

	t.Run("disabled", func(t *testing.T) {
		srv := newTestServer(t, nil)
		resp, out := postJSON(t, srv.URL+"/api/contact", valid)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, contact.MessageDisabled, out.Message)
		assert.True(t, out.Disabled)
	})

	t.Run("status follows the outcome, not the wording", func(t *testing.T) {
		for _, tc := range []struct {
			result contact.Result
			status int
		}{
			{contact.Result{Disabled: true, Message: "Closed for the summer"}, http.StatusServiceUnavailable},
			{contact.Result{Message: contact.MessageDisabled}, http.StatusBadGateway},
		} {
			srv := newTestServer(t, &stubSubmitter{result: tc.result})
			resp, _ := postJSON(t, srv.URL+"/api/contact", valid)
			assert.Equal(t, tc.status, resp.StatusCode, tc.result.Message)
		}
	})

	t.Run("delivery failure", func(t *testing.T) {
		sub := &stubSubmitter{result: contact.Result{Message: contact.MessageFailure}}
		srv := newTestServer(t, sub)
		resp, out := postJSON(t, srv.URL+"/api/contact", valid)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, contact.MessageFailure, out.Message)
	})

	t.Run("form encoded", func(t *testing.T) {
		sub := &stubSubmitter{result: contact.Result{Success: true, Message: contact.MessageSuccess}}
		srv := newTestServer(t, sub)

		resp, err := http.PostForm(srv.URL+"/api/contact", url.Values{
			"name":        {"Ada"},
			"email":       {"ada@example.com"},
			"instrument":  {"Piano"},
			"inquiryType": {"Lessons"},
			"message":     {"Hi"},
		})
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, sub.forms(), 1)
		assert.Equal(t, valid, sub.forms()[0])
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := newTestServer(t, nil)
		resp, err := http.Post(srv.URL+"/api/contact", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
