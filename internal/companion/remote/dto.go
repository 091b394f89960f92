package remote

import (
	"time"

	"github.com/magielabs/companion/internal/companion/models"
)

// Row shapes mirror the backend tables (snake_case). This file is the only
// place that knows the remote column names; everything else works with the
// local models.

type primerRow struct {
	ID            int64      `json:"id,omitempty"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Intro         string     `json:"intro"`
	Themes        []string   `json:"themes"`
	ThemesOther   string     `json:"themes_other"`
	Style         []string   `json:"style"`
	Communication string     `json:"communication"`
	Goals         string     `json:"goals"`
	SelectedAI    string     `json:"selected_ai"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func primerToRow(userID string, p models.Primer, now time.Time) primerRow {
	row := primerRow{
		UserID:        userID,
		Name:          p.Name,
		Intro:         p.Intro,
		Themes:        p.Themes,
		ThemesOther:   p.ThemesOther,
		Style:         p.Style,
		Communication: p.Communication,
		Goals:         p.Goals,
		SelectedAI:    p.SelectedAI,
		UpdatedAt:     &now,
	}
	if row.Themes == nil {
		row.Themes = []string{}
	}
	if row.Style == nil {
		row.Style = []string{}
	}
	return row
}

func (r primerRow) toModel() models.Primer {
	p := models.Primer{
		Name:          r.Name,
		Intro:         r.Intro,
		Themes:        r.Themes,
		ThemesOther:   r.ThemesOther,
		Style:         r.Style,
		Communication: r.Communication,
		Goals:         r.Goals,
		SelectedAI:    r.SelectedAI,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if p.Themes == nil {
		p.Themes = []string{}
	}
	if p.Style == nil {
		p.Style = []string{}
	}
	return p
}

type sessionRow struct {
	ID          int64     `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	SessionType string    `json:"session_type"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

func sessionToRow(userID string, s models.Session) sessionRow {
	return sessionRow{
		UserID:      userID,
		SessionType: string(s.Type),
		Note:        s.Note,
		CreatedAt:   s.Timestamp,
	}
}

func (r sessionRow) toModel() models.Session {
	return models.Session{
		ID:        r.ID,
		Timestamp: r.CreatedAt,
		Type:      models.SessionType(r.SessionType),
		Note:      r.Note,
	}
}

type settingsRow struct {
	ID                 int64      `json:"id,omitempty"`
	UserID             string     `json:"user_id"`
	ShowCrisisBanner   bool       `json:"show_crisis_banner"`
	OnboardingComplete bool       `json:"onboarding_complete"`
	UserName           *string    `json:"user_name"`
	Pronouns           *string    `json:"pronouns"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

func settingsToRow(userID string, s models.Settings, now time.Time) settingsRow {
	row := settingsRow{
		UserID:             userID,
		ShowCrisisBanner:   s.ShowCrisisBanner,
		OnboardingComplete: s.OnboardingComplete,
		UpdatedAt:          &now,
	}
	if s.UserName != "" {
		row.UserName = &s.UserName
	}
	if s.Pronouns != "" {
		row.Pronouns = &s.Pronouns
	}
	return row
}

func (r settingsRow) toModel() models.Settings {
	s := models.Settings{
		ShowCrisisBanner:   r.ShowCrisisBanner,
		OnboardingComplete: r.OnboardingComplete,
	}
	if r.UserName != nil {
		s.UserName = *r.UserName
	}
	if r.Pronouns != nil {
		s.Pronouns = *r.Pronouns
	}
	return s
}
