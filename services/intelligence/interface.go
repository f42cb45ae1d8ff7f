// File: services/intelligence/interface.go
package ai

import (
	"context"
	"time"

	"pathlab/models"
)

// Generator produces raw model output for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ResultCache memoizes recommendations.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, ids []string, ttl time.Duration)
}

// RecommendationService maps free-text symptoms to catalog test ids.
type RecommendationService interface {
	Recommend(ctx context.Context, symptoms string, catalog []models.LabTest) ([]string, error)
}
