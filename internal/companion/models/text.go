package models

import (
	"fmt"
	"strings"
	"time"
)

const textDateLayout = "January 2, 2006"

func formatTextDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(textDateLayout)
}

// Text renders the primer as the shareable Markdown document the user
// pastes into their AI of choice. Returns "" when the primer has no name.
func (p Primer) Text() string {
	if p.Name == "" {
		return ""
	}

	var b strings.Builder

	b.WriteString("# MAGIE Primer\n\n")
	fmt.Fprintf(&b, "**Name:** %s\n\n", p.Name)
	fmt.Fprintf(&b, "**Created:** %s\n", formatTextDate(p.CreatedAt))
	fmt.Fprintf(&b, "**Last Updated:** %s\n\n", formatTextDate(p.UpdatedAt))

	fmt.Fprintf(&b, "## Who I Am\n\n%s\n\n", p.Intro)

	b.WriteString("## What I'm Working On\n\n")
	if len(p.Themes) > 0 {
		fmt.Fprintf(&b, "**Emotional Themes:** %s\n\n", strings.Join(p.Themes, ", "))
	}
	if p.ThemesOther != "" {
		fmt.Fprintf(&b, "%s\n\n", p.ThemesOther)
	}

	b.WriteString("## How I Want To Be Met\n\n")
	if len(p.Style) > 0 {
		fmt.Fprintf(&b, "**Preferred Communication Style:** %s\n\n", strings.Join(p.Style, ", "))
	}
	if p.Communication != "" {
		fmt.Fprintf(&b, "**About My Communication:**\n%s\n\n", p.Communication)
	}

	fmt.Fprintf(&b, "## My Goals for MAGIE\n\n%s\n\n", p.Goals)

	if p.SelectedAI != "" {
		fmt.Fprintf(&b, "---\n\n*Practicing with %s*\n", p.SelectedAI)
	}

	return b.String()
}
