package site

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"math"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teranos/discfolio"
	"github.com/teranos/discfolio/contact"
	"github.com/teranos/discfolio/content"
	"github.com/teranos/discfolio/logging"
)

const (
	minPosterSide = 64
	maxPosterSide = 2048
	posterScale   = 2 // inline poster on the page is half the frame size
	maxFormBytes  = 64 << 10
)

type pageData struct {
	Title        string
	Owner        string
	Payload      content.Payload
	Items        []discfolio.DisplayItem
	Selected     discfolio.DisplayItem
	HasSelection bool
	Poster       template.URL
	Instruments  []string
	InquiryTypes []string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	payload := s.opts.Content.AllData(r.Context())
	items := payload.DisplayItems()

	cfg := s.opts.Frame
	cfg.OutputDir = ""
	cfg.Width /= posterScale
	cfg.Height /= posterScale
	frame, png, err := s.renderPoster(items, 0, cfg)
	if err != nil {
		s.logger.Error("render poster", logging.Error(err))
	}

	data := pageData{
		Title:        s.opts.Title,
		Owner:        s.opts.Owner,
		Payload:      payload,
		Items:        items,
		Instruments:  contact.Instruments,
		InquiryTypes: contact.InquiryTypes,
	}
	if frame.Selected >= 0 {
		data.Selected = items[frame.Selected]
		data.HasSelection = true
	}
	if len(png) > 0 {
		data.Poster = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
	}

	var buf bytes.Buffer
	if err := s.tpl.Execute(&buf, data); err != nil {
		s.logger.Error("render page", logging.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Content.AllData(r.Context()))
}

type carouselState struct {
	Rotation  float64 `json:"rotation"`
	Index     int     `json:"index"`
	ID        string  `json:"id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Embed     string  `json:"embed,omitempty"`
	Label     bool    `json:"label"`
}

func (s *Server) handleCarousel(w http.ResponseWriter, r *http.Request) {
	rotation, ok := floatParam(r, "rotation", 0)
	if !ok {
		http.Error(w, "invalid rotation", http.StatusBadRequest)
		return
	}
	items := s.opts.Content.AllData(r.Context()).DisplayItems()
	frame := s.frameAt(nil, items, rotation)

	state := carouselState{Rotation: rotation, Index: frame.Selected, Label: frame.Label != nil}
	if frame.Selected >= 0 {
		item := items[frame.Selected]
		state.ID = item.ID
		state.Title = item.Title
		state.Thumbnail = discfolio.ThumbnailURL(item.ID)
		state.Embed = discfolio.EmbedURL(item.ID)
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	rotation, ok := floatParam(r, "rotation", 0)
	if !ok {
		http.Error(w, "invalid rotation", http.StatusBadRequest)
		return
	}
	cfg := s.opts.Frame
	cfg.OutputDir = ""
	cfg.Width = clampSide(intParam(r, "width", cfg.Width))
	cfg.Height = clampSide(intParam(r, "height", cfg.Height))

	items := s.opts.Content.AllData(r.Context()).DisplayItems()
	_, png, err := s.renderPoster(items, rotation, cfg)
	if err != nil {
		s.logger.Error("render poster", logging.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=60")
	_, _ = w.Write(png)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.opts.Content.AllData(r.Context()).Video(id); !ok {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, discfolio.EmbedURL(id), http.StatusFound)
}

type contactResponse struct {
	contact.Result
	Errors contact.FieldErrors `json:"errors,omitempty"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	form, err := decodeForm(w, r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if errs := contact.Validate(form); !errs.OK() {
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Result: contact.Result{Message: "Please correct the highlighted fields"},
			Errors: errs,
		})
		return
	}

	res := s.opts.Contact.Submit(r.Context(), form)
	status := http.StatusOK
	switch {
	case res.Success:
	case res.Disabled:
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, contactResponse{Result: res})
}

// frameAt lays items out at rotation and advances one frame on surface. A nil
// surface lays out on the configured frame size.
func (s *Server) frameAt(surface discfolio.Surface, items []discfolio.DisplayItem, rotation float64) discfolio.Frame {
	var opts []discfolio.Option
	if s.opts.ActiveScale > 0 {
		opts = append(opts, discfolio.WithActiveScale(s.opts.ActiveScale))
	}
	if surface == nil {
		l := discfolio.LayoutFor(float64(s.opts.Frame.Width), float64(s.opts.Frame.Height))
		if s.opts.DiscRadius > 0 {
			l.DiscRadius = s.opts.DiscRadius
		}
		l.ActiveScale = 0
		opts = append(opts, discfolio.WithLayout(l))
	} else if s.opts.DiscRadius > 0 {
		opts = append(opts, discfolio.WithDiscRadius(s.opts.DiscRadius))
	}

	r := discfolio.NewRenderer(surface, opts...)
	r.SetItems(items)
	r.SnapTo(rotation)
	r.AdvanceFrame()
	return r.LastFrame()
}

func (s *Server) renderPoster(items []discfolio.DisplayItem, rotation float64, cfg discfolio.FrameConfig) (discfolio.Frame, []byte, error) {
	surface := discfolio.NewRasterSurface(cfg)
	frame := s.frameAt(surface, items, rotation)
	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return frame, nil, err
	}
	return frame, buf.Bytes(), nil
}

func decodeForm(w http.ResponseWriter, r *http.Request) (contact.Form, error) {
	var f contact.Form
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		err := json.NewDecoder(r.Body).Decode(&f)
		return f, err
	}
	if err := r.ParseForm(); err != nil {
		return f, err
	}
	f = contact.Form{
		Name:        r.PostForm.Get("name"),
		Email:       r.PostForm.Get("email"),
		Instrument:  r.PostForm.Get("instrument"),
		InquiryType: r.PostForm.Get("inquiryType"),
		Message:     r.PostForm.Get("message"),
	}
	return f, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func floatParam(r *http.Request, name string, def float64) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func clampSide(v int) int {
	return max(minPosterSide, min(maxPosterSide, v))
}
