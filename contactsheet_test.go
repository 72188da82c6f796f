package discfolio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSheet(t *testing.T) {
	dir := t.TempDir()
	list := items(6)
	list[4].Title = "Fish & Chips"

	take := NewOperator(list, smallFrameConfig(dir)).
		CaptureTrackingShot("initial").
		ScrollWithTrackingShot(480, 300, "after scroll").
		Stop()
	require.True(t, take.Success)

	sheet, err := NewContactSheet("Session <1>", take, list)
	require.NoError(t, err)
	require.Len(t, sheet.Shots, 2)
	assert.Equal(t, 1, sheet.Shots[0].Step)
	assert.Equal(t, "Fish & Chips", sheet.Shots[0].Title)
	assert.Equal(t, "frame_000_initial.png", sheet.Shots[0].Filename)
	assert.True(t, strings.HasPrefix(string(sheet.Shots[1].DataURL), "data:image/png;base64,"))

	path := filepath.Join(dir, "sheet", "index.html")
	require.NoError(t, sheet.Write(path))

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	page := string(html)
	assert.Contains(t, page, "Session &lt;1&gt;")
	assert.Contains(t, page, "Fish &amp; Chips")
	assert.Contains(t, page, `src="data:image/png;base64,`)
	assert.Contains(t, page, "complete")
}

func TestContactSheet_MissingFrame(t *testing.T) {
	take := &Take{Shots: []TrackingShot{{Label: "gone", Filename: filepath.Join(t.TempDir(), "gone.png")}}}
	_, err := NewContactSheet("x", take, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestContactSheet_FailedTake(t *testing.T) {
	take := &Take{Error: errors.New("capture failed")}
	sheet, err := NewContactSheet("x", take, nil)
	require.NoError(t, err)
	assert.Equal(t, "capture failed", sheet.Error)

	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, sheet.Write(path))
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "failed: capture failed")
}
