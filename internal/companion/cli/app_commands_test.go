package cli

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magielabs/companion/internal/companion/models"
)

func appWithInput(data *fakeData, input string) *App {
	return &App{data: data, reader: bufio.NewReader(strings.NewReader(input))}
}

func TestLogSession(t *testing.T) {
	silencePrintln(t)

	data := &fakeData{}
	a := appWithInput(data, "practiced breathing\n\n")

	require.NoError(t, a.LogSession(context.Background()))
	assert.Equal(t, 1, data.addCalls)
	assert.Equal(t, models.SessionTypeSession, data.addedType)
	assert.Equal(t, "practiced breathing", data.addedNote)
}

func TestLogSession_EmptyNote(t *testing.T) {
	silencePrintln(t)

	data := &fakeData{}
	a := appWithInput(data, "\n")

	require.NoError(t, a.LogSession(context.Background()))
	assert.Equal(t, 1, data.addCalls)
	assert.Equal(t, "", data.addedNote)
}

func TestEditPrimer_BlankFieldsAreNotPatched(t *testing.T) {
	silencePrintln(t)

	// Name, Intro (multiline), Themes, Other themes, Style, Communication
	// (multiline), Goals (multiline), Selected AI. Blank lines keep the
	// current value.
	input := strings.Join([]string{
		"River",           // name
		"Hello there", "", // intro, terminated by the empty line
		"anxiety, sleep", // themes
		"",               // other themes
		"",               // style
		"",               // communication
		"",               // goals
		"",               // selected AI
	}, "\n") + "\n"

	data := &fakeData{primer: models.Primer{Name: "River", Intro: "Hello there"}}
	a := appWithInput(data, input)

	require.NoError(t, a.EditPrimer(context.Background()))
	require.NotNil(t, data.savedPrimer)

	patch := *data.savedPrimer
	require.NotNil(t, patch.Name)
	assert.Equal(t, "River", *patch.Name)
	require.NotNil(t, patch.Intro)
	assert.Equal(t, "Hello there", *patch.Intro)
	require.NotNil(t, patch.Themes)
	assert.Equal(t, []string{"anxiety", "sleep"}, *patch.Themes)

	assert.Nil(t, patch.ThemesOther)
	assert.Nil(t, patch.Style)
	assert.Nil(t, patch.Communication)
	assert.Nil(t, patch.Goals)
	assert.Nil(t, patch.SelectedAI)
}

func TestEditSettings(t *testing.T) {
	silencePrintln(t)

	data := &fakeData{}
	a := appWithInput(data, "River\nthey/them\nn\n")

	require.NoError(t, a.EditSettings(context.Background()))
	require.NotNil(t, data.savedSettings)

	patch := *data.savedSettings
	require.NotNil(t, patch.UserName)
	assert.Equal(t, "River", *patch.UserName)
	require.NotNil(t, patch.Pronouns)
	assert.Equal(t, "they/them", *patch.Pronouns)
	require.NotNil(t, patch.ShowCrisisBanner)
	assert.False(t, *patch.ShowCrisisBanner)
}

func TestEditSettings_BlankBannerAnswerKeepsValue(t *testing.T) {
	silencePrintln(t)

	data := &fakeData{}
	a := appWithInput(data, "\n\n\n")

	require.NoError(t, a.EditSettings(context.Background()))
	require.NotNil(t, data.savedSettings)
	assert.Nil(t, data.savedSettings.ShowCrisisBanner)
}

func TestShowPrimer_Empty(t *testing.T) {
	var printed []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, arg := range args {
			if s, ok := arg.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	a := &App{data: &fakeData{}}
	require.NoError(t, a.ShowPrimer(context.Background()))
	require.Len(t, printed, 1)
	assert.Contains(t, printed[0], "No primer yet")
}

func TestStats(t *testing.T) {
	var printed []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, arg := range args {
			if s, ok := arg.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	a := &App{data: &fakeData{count: 7, days: 3}}
	require.NoError(t, a.Stats(context.Background()))
	assert.Contains(t, printed, "Sessions: 7")
	assert.Contains(t, printed, "Days practicing: 3")
}

func TestExportImport_FileRoundTrip(t *testing.T) {
	silencePrintln(t)

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	doc := models.Export{
		Primer:     &models.Primer{Name: "River", Intro: "Hi", Themes: []string{}, Style: []string{}},
		Sessions:   []models.Session{{ID: 5, Timestamp: now, Type: models.SessionTypeSession, Note: "x"}},
		ExportedAt: now,
	}

	data := &fakeData{export: doc}
	a := &App{data: data}

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, a.ExportData(context.Background(), path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, a.ImportData(context.Background(), path))
	require.NotNil(t, data.imported)
	assert.Equal(t, doc.Primer, data.imported.Primer)
	assert.Equal(t, doc.Sessions, data.imported.Sessions)
	assert.Nil(t, data.imported.Settings)
}
