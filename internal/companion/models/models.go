// Package models defines the four account-owned records kept by the
// companion app (account metadata, primer, session list, settings), the
// patch types used for partial updates, and the export document.
package models

import "time"

// SessionType classifies a logged practice event.
type SessionType string

const (
	SessionTypeSession SessionType = "session"
)

// AccountMeta tracks local account lifecycle state. It is created on first
// initialization and mutated on significant lifecycle events, which also
// refresh LastVisit.
type AccountMeta struct {
	CreatedAt          time.Time `json:"createdAt"`
	LastVisit          time.Time `json:"lastVisit"`
	OnboardingComplete bool      `json:"onboardingComplete"`
}

// AccountMetaPatch is a partial AccountMeta update. Nil fields are left
// unchanged.
type AccountMetaPatch struct {
	OnboardingComplete *bool
}

// Apply returns a copy of m with the patch fields overridden.
func (m AccountMeta) Apply(p AccountMetaPatch) AccountMeta {
	if p.OnboardingComplete != nil {
		m.OnboardingComplete = *p.OnboardingComplete
	}
	return m
}

// Primer is the user's structured self-description profile, the central
// artifact of the onboarding wizard. CreatedAt is set exactly once, on the
// first save; UpdatedAt refreshes on every save.
type Primer struct {
	Name          string     `json:"name"`
	Intro         string     `json:"intro"`
	Themes        []string   `json:"themes"`
	ThemesOther   string     `json:"themesOther"`
	Style         []string   `json:"style"`
	Communication string     `json:"communication"`
	Goals         string     `json:"goals"`
	SelectedAI    string     `json:"selectedAI"`
	CreatedAt     *time.Time `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// DefaultPrimer returns the empty-but-valid primer stored before the user
// has filled anything in.
func DefaultPrimer() Primer {
	return Primer{Themes: []string{}, Style: []string{}}
}

// HasContent reports whether the primer has been meaningfully filled in:
// both a name and an introduction are present.
func (p Primer) HasContent() bool {
	return p.Name != "" && p.Intro != ""
}

// PrimerPatch is a partial Primer update. Nil fields are left unchanged;
// slice fields use pointers so "absent" and "set to empty" stay distinct.
// Timestamps are owned by the store and cannot be patched directly.
type PrimerPatch struct {
	Name          *string
	Intro         *string
	Themes        *[]string
	ThemesOther   *string
	Style         *[]string
	Communication *string
	Goals         *string
	SelectedAI    *string
}

// Apply returns a copy of p with the patch fields overridden.
func (p Primer) Apply(patch PrimerPatch) Primer {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Intro != nil {
		p.Intro = *patch.Intro
	}
	if patch.Themes != nil {
		p.Themes = *patch.Themes
	}
	if patch.ThemesOther != nil {
		p.ThemesOther = *patch.ThemesOther
	}
	if patch.Style != nil {
		p.Style = *patch.Style
	}
	if patch.Communication != nil {
		p.Communication = *patch.Communication
	}
	if patch.Goals != nil {
		p.Goals = *patch.Goals
	}
	if patch.SelectedAI != nil {
		p.SelectedAI = *patch.SelectedAI
	}
	return p
}

// Session is one logged practice/interaction event. Local inserts mint the
// ID from wall-clock milliseconds; rows loaded from the backend carry the
// server-assigned ID instead.
type Session struct {
	ID        int64       `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      SessionType `json:"type"`
	Note      string      `json:"note"`
}

// SessionPatch is a partial Session update.
type SessionPatch struct {
	Type *SessionType
	Note *string
}

// Apply returns a copy of s with the patch fields overridden.
func (s Session) Apply(p SessionPatch) Session {
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Note != nil {
		s.Note = *p.Note
	}
	return s
}

// Settings holds per-account preferences. OnboardingComplete exists here
// only as a write-only mirror of the backend column; AccountMeta is the
// authoritative copy.
type Settings struct {
	ShowCrisisBanner   bool   `json:"showCrisisBanner"`
	UserName           string `json:"userName"`
	Pronouns           string `json:"pronouns"`
	OnboardingComplete bool   `json:"onboardingComplete"`
}

// DefaultSettings returns settings for a fresh account.
func DefaultSettings() Settings {
	return Settings{ShowCrisisBanner: true}
}

// SettingsPatch is a partial Settings update.
type SettingsPatch struct {
	ShowCrisisBanner   *bool
	UserName           *string
	Pronouns           *string
	OnboardingComplete *bool
}

// Apply returns a copy of s with the patch fields overridden.
func (s Settings) Apply(p SettingsPatch) Settings {
	if p.ShowCrisisBanner != nil {
		s.ShowCrisisBanner = *p.ShowCrisisBanner
	}
	if p.UserName != nil {
		s.UserName = *p.UserName
	}
	if p.Pronouns != nil {
		s.Pronouns = *p.Pronouns
	}
	if p.OnboardingComplete != nil {
		s.OnboardingComplete = *p.OnboardingComplete
	}
	return s
}

// Export is the full-state export document: all four local records plus
// the export timestamp. On import, absent records leave the corresponding
// local slot untouched. Sessions carries no omitempty: an export of an
// empty list must survive a JSON round trip as "present but empty" so
// importing it overwrites rather than skips the session slot.
type Export struct {
	UserData   *AccountMeta `json:"userData,omitempty"`
	Primer     *Primer      `json:"primer,omitempty"`
	Sessions   []Session    `json:"sessions"`
	Settings   *Settings    `json:"settings,omitempty"`
	ExportedAt time.Time    `json:"exportedAt"`
}

// Ptr returns a pointer to v. Convenience for building patches.
func Ptr[T any](v T) *T { return &v }
