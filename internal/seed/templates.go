package seed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	portssvc "github.com/SscSPs/renovation_backoffice/internal/core/ports/services"
	"github.com/SscSPs/renovation_backoffice/internal/dto"
	"github.com/SscSPs/renovation_backoffice/internal/middleware"
	"gopkg.in/yaml.v3"
)

// SystemUserID is recorded as the author of seeded templates.
const SystemUserID = "system-seed"

// TemplateCatalog is the YAML document of default templates.
type TemplateCatalog struct {
	Templates []dto.CreateTemplateRequest `yaml:"templates"`
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

// LoadTemplateCatalog reads and parses a catalog file.
func LoadTemplateCatalog(path string) (*TemplateCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template catalog %s: %w", path, err)
	}
	return ParseTemplateCatalog(data)
}

// ParseTemplateCatalog decodes a catalog. Unknown keys, blank names and
// duplicate names (case-insensitive) are rejected.
func ParseTemplateCatalog(data []byte) (*TemplateCatalog, error) {
	var catalog TemplateCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return nil, fmt.Errorf("%w: invalid template catalog: %v", apperrors.ErrValidation, err)
	}

	seen := make(map[string]bool, len(catalog.Templates))
	for i, t := range catalog.Templates {
		key := strings.ToLower(strings.TrimSpace(t.Name))
		if key == "" {
			return nil, fmt.Errorf("%w: template #%d has no name", apperrors.ErrInvalidName, i+1)
		}
		if seen[key] {
			return nil, fmt.Errorf("%w: template %q is listed twice", apperrors.ErrDuplicate, t.Name)
		}
		seen[key] = true
		if t.Snapshot.UnitPrice == nil || t.Snapshot.TaxRatePercent == nil || t.Snapshot.DefaultQuantity == nil {
			return nil, fmt.Errorf("%w: template %q needs unitPrice, taxRatePercent and defaultQuantity",
				apperrors.ErrValidation, t.Name)
		}
	}
	return &catalog, nil
}

// Apply creates every catalog template whose name is not in the catalog yet,
// so running it twice is harmless. Existing templates are never modified.
func Apply(ctx context.Context, templates portssvc.TemplateSvcFacade, catalog *TemplateCatalog) (Result, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := templates.ListTemplates(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list templates: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, t := range existing {
		names[strings.ToLower(t.Name)] = true
	}

	var res Result
	for _, req := range catalog.Templates {
		if names[strings.ToLower(strings.TrimSpace(req.Name))] {
			logger.Debug("Template already present, skipping", slog.String("name", req.Name))
			res.Skipped++
			continue
		}
		created, err := templates.CreateTemplate(ctx, req, SystemUserID)
		if err != nil {
			return res, fmt.Errorf("failed to seed template %q: %w", req.Name, err)
		}
		logger.Info("Seeded template", slog.String("template_id", created.TemplateID), slog.String("name", created.Name))
		res.Created++
	}
	return res, nil
}
