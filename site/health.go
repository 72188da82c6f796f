package site

import (
	"net/http"

	"github.com/teranos/discfolio/trip"
)

// TripReporter is implemented by integrations that record their failures.
type TripReporter interface {
	Trips() *trip.Handler
}

type healthStatus struct {
	Status     string                     `json:"status"`
	Components map[string]componentHealth `json:"components,omitempty"`
}

type componentHealth struct {
	Healthy  bool   `json:"healthy"`
	Trips    int    `json:"trips"`
	Stumbles int    `json:"stumbles"`
	Last     string `json:"last,omitempty"`
	Summary  string `json:"summary"`
}

// HealthHandler reports liveness and the failures recorded by reporters. The
// site keeps serving fallbacks while degraded, so the status code stays 200.
func HealthHandler(reporters ...TripReporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthOf(reporters))
	})
}

func healthOf(reporters []TripReporter) healthStatus {
	status := healthStatus{Status: "ok"}
	for _, reporter := range reporters {
		h := reporter.Trips()
		if h == nil {
			continue
		}
		c := componentHealth{
			Healthy:  h.ShouldContinue(),
			Trips:    len(h.GetTrips()),
			Stumbles: len(h.GetStumbles()),
			Summary:  h.Summary(),
		}
		if last, ok := h.Last(); ok {
			c.Last = last.Error()
		}
		if !c.Healthy {
			status.Status = "degraded"
		}
		if status.Components == nil {
			status.Components = make(map[string]componentHealth)
		}
		status.Components[h.Component()] = c
	}
	return status
}

// reportersOf collects the values that record trips.
func reportersOf(values ...any) []TripReporter {
	var out []TripReporter
	for _, v := range values {
		if r, ok := v.(TripReporter); ok {
			out = append(out, r)
		}
	}
	return out
}
