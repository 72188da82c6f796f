package discfolio

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed html_templates/contact_sheet.html
var contactSheetTemplate string

var contactSheetTmpl = template.Must(template.New("contact_sheet").Parse(contactSheetTemplate))

// ContactSheet is a single HTML page showing every frame of a Take.
type ContactSheet struct {
	Title     string
	Generated string
	Duration  time.Duration
	Frames    int
	Success   bool
	Error     string
	Shots     []SheetEntry
}

// SheetEntry is one captured frame with its context.
type SheetEntry struct {
	Step     int
	Label    string
	Filename string
	Frame    int
	Selected int
	Title    string
	Rotation float64
	DataURL  template.URL // frame embedded as a base64 data URL
}

// NewContactSheet collects the shots of take, reading each PNG back from disk.
// items resolves selected indices to titles.
func NewContactSheet(title string, take *Take, items []DisplayItem) (ContactSheet, error) {
	sheet := ContactSheet{
		Title:     title,
		Generated: time.Now().Format(time.RFC1123),
		Duration:  take.Duration.Round(time.Millisecond),
		Frames:    take.Frames,
		Success:   take.Success,
	}
	if take.Error != nil {
		sheet.Error = take.Error.Error()
	}

	for i, shot := range take.Shots {
		url, err := imageDataURL(shot.Filename)
		if err != nil {
			return ContactSheet{}, err
		}
		entry := SheetEntry{
			Step:     i + 1,
			Label:    shot.Label,
			Filename: filepath.Base(shot.Filename),
			Frame:    shot.Frame,
			Selected: shot.Selected,
			Rotation: shot.Rotation,
			DataURL:  url,
		}
		if shot.Selected >= 0 && shot.Selected < len(items) {
			entry.Title = items[shot.Selected].Title
		}
		sheet.Shots = append(sheet.Shots, entry)
	}
	return sheet, nil
}

// Write renders the sheet to path, creating its directory.
func (s ContactSheet) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create contact sheet directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create contact sheet: %w", err)
	}
	defer file.Close()

	if err := contactSheetTmpl.Execute(file, s); err != nil {
		return fmt.Errorf("render contact sheet: %w", err)
	}
	return nil
}

// imageDataURL reads an image file and encodes it as a data URL.
func imageDataURL(imagePath string) (template.URL, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}

	mimeType := "image/png"
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".gif":
		mimeType = "image/gif"
	}

	return template.URL("data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}
