package driving

import "github.com/custodia-labs/sercha-topics/internal/core/domain"

// SettingsService resolves the run configuration.
type SettingsService interface {
	// Get resolves settings from configuration, falling back to defaults.
	Get() (*domain.PipelineSettings, error)

	// Validate checks settings for a run. When requireIndex is true,
	// the index name and credentials must be present.
	Validate(settings *domain.PipelineSettings, requireIndex bool) error

	// GetDefaults returns default settings.
	GetDefaults() domain.PipelineSettings
}
