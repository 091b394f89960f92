package store

import (
	"context"

	"github.com/magielabs/companion/internal/companion/models"
)

// Export aggregates all four records into one document stamped with the
// export time.
func (s *Store) Export(ctx context.Context) (models.Export, error) {
	meta, err := s.UserData(ctx)
	if err != nil {
		return models.Export{}, err
	}
	primer, err := s.Primer(ctx)
	if err != nil {
		return models.Export{}, err
	}
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return models.Export{}, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return models.Export{}, err
	}

	return models.Export{
		UserData:   &meta,
		Primer:     &primer,
		Sessions:   sessions,
		Settings:   &settings,
		ExportedAt: s.now(),
	}, nil
}

// Import overwrites each record present in the document and leaves absent
// ones untouched.
func (s *Store) Import(ctx context.Context, doc models.Export) error {
	if doc.UserData != nil {
		if err := s.ReplaceUserData(ctx, *doc.UserData); err != nil {
			return err
		}
	}
	if doc.Primer != nil {
		if err := s.ReplacePrimer(ctx, *doc.Primer); err != nil {
			return err
		}
	}
	if doc.Sessions != nil {
		if err := s.ReplaceSessions(ctx, doc.Sessions); err != nil {
			return err
		}
	}
	if doc.Settings != nil {
		if err := s.ReplaceSettings(ctx, *doc.Settings); err != nil {
			return err
		}
	}
	return nil
}
