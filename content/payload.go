// Package content supplies the portfolio's biography, discography, events and
// videos.
//
// A Provider fetches the payload from a Source (the spreadsheet endpoint or a
// static JSON export), caches it for a configurable duration and falls back
// to a built-in payload whenever the source is disabled or misbehaves. A
// failed fetch never reaches the visitor; it is logged and recorded as a trip.
package content

import (
	"strings"

	"github.com/teranos/discfolio"
)

// Biography is the free-form bio paragraph.
type Biography struct {
	Text string `json:"text"`
}

// Album is one discography entry.
type Album struct {
	Title       string `json:"title"`
	Year        string `json:"year"`
	Association string `json:"association"`
}

// Event is an upcoming performance. Optional fields are empty when unknown.
type Event struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Notes    string `json:"notes"`
}

// Video is a portfolio entry backed by a YouTube video id.
type Video struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Payload is everything the site renders.
type Payload struct {
	Biography   Biography `json:"biography"`
	Discography []Album   `json:"discography"`
	Events      []Event   `json:"events"`
	Videos      []Video   `json:"videos"`
	Timestamp   string    `json:"timestamp,omitempty"`
	// Error is set by the remote endpoint when it could not build the payload.
	Error string `json:"error,omitempty"`
}

// DisplayItems maps videos onto carousel items, skipping records without an id.
func (p Payload) DisplayItems() []discfolio.DisplayItem {
	items := make([]discfolio.DisplayItem, 0, len(p.Videos))
	for _, v := range p.Videos {
		id := strings.TrimSpace(v.ID)
		if id == "" {
			continue
		}
		items = append(items, discfolio.DisplayItem{ID: id, Title: v.Title})
	}
	return items
}

// Video looks up a video by id.
func (p Payload) Video(id string) (Video, bool) {
	for _, v := range p.Videos {
		if v.ID == id {
			return v, true
		}
	}
	return Video{}, false
}

// clone copies the slices so callers cannot mutate the cached payload.
func (p Payload) clone() Payload {
	out := p
	out.Discography = append([]Album(nil), p.Discography...)
	out.Events = append([]Event(nil), p.Events...)
	out.Videos = append([]Video(nil), p.Videos...)
	return out
}
