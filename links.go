package discfolio

import (
	"net/url"
	"strings"
)

// ThumbnailURL is the full-size YouTube thumbnail for a video id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + url.PathEscape(id) + "/maxresdefault.jpg"
}

// EmbedURL is the autoplaying embed player URL for a video id.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + url.PathEscape(id) + "?autoplay=1"
}

// MapsURL links a free-form venue to a map search.
func MapsURL(location string) string {
	return "https://maps.google.com/?q=" + strings.ReplaceAll(url.QueryEscape(location), "+", "%20")
}
