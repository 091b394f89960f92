package cli

import (
	"context"
	"os"
	"strings"

	"github.com/magielabs/companion/internal/companion/models"
)

// ShowPrimer prints the primer rendered as text.
func (a *App) ShowPrimer(ctx context.Context) error {
	primer, err := a.data.Primer(ctx)
	if err != nil {
		return err
	}

	if !primer.HasContent() {
		printlnFn("No primer yet. Use 'edit' to create one.")
		return nil
	}

	printlnFn(primer.Text())
	return nil
}

// EditPrimer walks the user through the primer fields. Blank answers keep
// the current value, so a quick edit touches only what changed.
func (a *App) EditPrimer(ctx context.Context) error {
	printlnFn("Editing primer. Leave a field blank to keep its current value.")

	var patch models.PrimerPatch

	name, err := getSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}

	intro, err := GetMultiline(a.reader, "Intro", os.Stdout)
	if err != nil {
		return err
	}
	if intro != "" {
		patch.Intro = &intro
	}

	themes, err := GetList(a.reader, "Themes", os.Stdout)
	if err != nil {
		return err
	}
	if len(themes) > 0 {
		patch.Themes = &themes
	}

	themesOther, err := getSimpleText(a.reader, "Other themes", os.Stdout)
	if err != nil {
		return err
	}
	if themesOther != "" {
		patch.ThemesOther = &themesOther
	}

	style, err := GetList(a.reader, "Style", os.Stdout)
	if err != nil {
		return err
	}
	if len(style) > 0 {
		patch.Style = &style
	}

	communication, err := GetMultiline(a.reader, "Communication", os.Stdout)
	if err != nil {
		return err
	}
	if communication != "" {
		patch.Communication = &communication
	}

	goals, err := GetMultiline(a.reader, "Goals", os.Stdout)
	if err != nil {
		return err
	}
	if goals != "" {
		patch.Goals = &goals
	}

	selectedAI, err := getSimpleText(a.reader, "Selected AI", os.Stdout)
	if err != nil {
		return err
	}
	if selectedAI != "" {
		patch.SelectedAI = &selectedAI
	}

	saved, err := a.data.SavePrimer(ctx, a.session, patch)
	if err != nil {
		printlnFn("Could not save primer:", err.Error())
		return err
	}

	if saved.HasContent() {
		printlnFn("Primer saved.")
	} else {
		printlnFn("Primer saved. Add a name and intro to complete it.")
	}
	return nil
}

// EditSettings walks the user through the display settings. Blank answers
// keep the current value.
func (a *App) EditSettings(ctx context.Context) error {
	printlnFn("Editing settings. Leave a field blank to keep its current value.")

	var patch models.SettingsPatch

	userName, err := getSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	if userName != "" {
		patch.UserName = &userName
	}

	pronouns, err := getSimpleText(a.reader, "Pronouns", os.Stdout)
	if err != nil {
		return err
	}
	if pronouns != "" {
		patch.Pronouns = &pronouns
	}

	banner, err := getSimpleText(a.reader, "Show crisis banner (y/n)", os.Stdout)
	if err != nil {
		return err
	}
	switch strings.ToLower(banner) {
	case "y", "yes":
		patch.ShowCrisisBanner = models.Ptr(true)
	case "n", "no":
		patch.ShowCrisisBanner = models.Ptr(false)
	}

	if _, err := a.data.UpdateSettings(ctx, a.session, patch); err != nil {
		printlnFn("Could not save settings:", err.Error())
		return err
	}

	printlnFn("Settings saved.")
	return nil
}
