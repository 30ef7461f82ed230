package template

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/schedula/clinic-scheduler/internal/domain/scheduling"
)

type AutoGenerateSummary struct {
	Templates int `json:"templates"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// AutoGenerateAll expands every active auto-generating template up to its
// weeks-ahead horizon. Meant to be triggered periodically from outside;
// one broken template does not stop the batch.
type AutoGenerateAll struct {
	repo     domain.Repository
	generate *Generate
	logger   *zap.Logger
}

func NewAutoGenerateAll(repo domain.Repository, generate *Generate, logger *zap.Logger) *AutoGenerateAll {
	return &AutoGenerateAll{repo: repo, generate: generate, logger: logger}
}

func (uc *AutoGenerateAll) Execute(ctx context.Context) (AutoGenerateSummary, error) {
	templates, err := uc.repo.ListAutoGenerateTemplates(ctx)
	if err != nil {
		return AutoGenerateSummary{}, err
	}

	summary := AutoGenerateSummary{Templates: len(templates)}
	for i := range templates {
		t := &templates[i]

		out, err := uc.generate.expand(ctx, t, "", "", false, false)
		if err != nil {
			summary.Failed++
			uc.logger.Warn("template auto-generation failed",
				zap.String("template_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		summary.Generated += len(out.Generated)
		summary.Skipped += len(out.Skipped)
	}
	return summary, nil
}
