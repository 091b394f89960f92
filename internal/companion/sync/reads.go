package sync

import (
	"context"

	"github.com/magielabs/companion/internal/companion/models"
)

// Read-side delegation. Reads are always local: the remote copy only
// enters through LoadAll.

func (c *Coordinator) UserData(ctx context.Context) (models.AccountMeta, error) {
	return c.store.UserData(ctx)
}

func (c *Coordinator) Primer(ctx context.Context) (models.Primer, error) {
	return c.store.Primer(ctx)
}

func (c *Coordinator) Sessions(ctx context.Context) ([]models.Session, error) {
	return c.store.Sessions(ctx)
}

func (c *Coordinator) Settings(ctx context.Context) (models.Settings, error) {
	return c.store.Settings(ctx)
}

func (c *Coordinator) SessionCount(ctx context.Context) (int, error) {
	return c.store.SessionCount(ctx)
}

func (c *Coordinator) DaysPracticing(ctx context.Context) (int, error) {
	return c.store.DaysPracticing(ctx)
}

func (c *Coordinator) HasPrimer(ctx context.Context) (bool, error) {
	return c.store.HasPrimer(ctx)
}

func (c *Coordinator) IsOnboardingComplete(ctx context.Context) (bool, error) {
	return c.store.IsOnboardingComplete(ctx)
}

// Export aggregates the four local records into one document.
func (c *Coordinator) Export(ctx context.Context) (models.Export, error) {
	return c.store.Export(ctx)
}

// Import overwrites the records present in the document, leaving absent
// ones untouched. Import is a local restore; imported data reaches the
// backend through subsequent saves, not here.
func (c *Coordinator) Import(ctx context.Context, doc models.Export) error {
	return c.store.Import(ctx, doc)
}
