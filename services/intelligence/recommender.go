// File: services/intelligence/recommender.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"pathlab/models"
	"pathlab/utils"

	"go.uber.org/zap"
)

// MaxRecommendations caps the ids returned for one query.
const MaxRecommendations = 3

// Recommender turns symptoms into at most three catalog ids. A nil
// generator means no API key was configured and every query returns nothing.
type Recommender struct {
	generator Generator
	cache     ResultCache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewRecommender(generator Generator, cache ResultCache, cacheTTL time.Duration, logger *zap.Logger) *Recommender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{generator: generator, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Recommend never fails on model or parse errors; those are logged and
// produce an empty result.
func (r *Recommender) Recommend(ctx context.Context, symptoms string, catalog []models.LabTest) ([]string, error) {
	symptoms = strings.TrimSpace(symptoms)
	if symptoms == "" || len(catalog) == 0 {
		return []string{}, nil
	}
	if r.generator == nil {
		r.logger.Warn("API key missing for Gemini, skipping recommendation")
		return []string{}, nil
	}

	key := cacheKey(symptoms, catalog)
	if r.cache != nil {
		if ids, ok := r.cache.Get(ctx, key); ok {
			utils.RecommendationsTotal.WithLabelValues("cached").Inc()
			return ids, nil
		}
	}

	raw, err := r.generator.GenerateContent(ctx, buildPrompt(symptoms, catalog))
	if err != nil {
		r.logger.Error("Gemini AI recommendation error", zap.Error(err))
		utils.RecommendationsTotal.WithLabelValues("error").Inc()
		return []string{}, nil
	}

	ids, err := parseIDs(raw)
	if err != nil {
		r.logger.Error("Unparseable Gemini response", zap.String("raw", raw), zap.Error(err))
		utils.RecommendationsTotal.WithLabelValues("error").Inc()
		return []string{}, nil
	}
	ids = filterKnown(ids, catalog)

	if r.cache != nil {
		r.cache.Set(ctx, key, ids, r.cacheTTL)
	}
	utils.RecommendationsTotal.WithLabelValues("ok").Inc()
	return ids, nil
}

func buildPrompt(symptoms string, catalog []models.LabTest) string {
	var tests strings.Builder
	for _, t := range catalog {
		fmt.Fprintf(&tests, "%s: %s (%s)\n", t.ID, t.Name, t.Description)
	}
	return fmt.Sprintf(`You are a helpful medical assistant for Ravi Diagnostic Lab.
User Symptoms: %q

Available Tests in our Lab:
%s
Based on the symptoms, recommend 1 to 3 most relevant tests from the list above.
Only return the IDs of the tests in a JSON array.
If no tests are relevant, return an empty array.`, symptoms, tests.String())
}

// parseIDs accepts a JSON array of strings, optionally inside a markdown fence.
func parseIDs(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, nil
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var ids []string
	if err := json.Unmarshal([]byte(text), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// filterKnown keeps ids present in catalog, without duplicates, in model order.
func filterKnown(ids []string, catalog []models.LabTest) []string {
	known := make(map[string]bool, len(catalog))
	for _, t := range catalog {
		known[t.ID] = true
	}
	out := make([]string, 0, MaxRecommendations)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if !known[id] || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		if len(out) == MaxRecommendations {
			break
		}
	}
	return out
}

// cacheKey covers every catalog field that reaches the prompt, so an edited
// name or description invalidates cached answers.
func cacheKey(symptoms string, catalog []models.LabTest) string {
	entries := make([]models.LabTest, len(catalog))
	copy(entries, catalog)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	h := sha256.New()
	h.Write([]byte(strings.ToLower(symptoms)))
	for _, t := range entries {
		h.Write([]byte{0})
		h.Write([]byte(t.ID))
		h.Write([]byte{0})
		h.Write([]byte(t.Name))
		h.Write([]byte{0})
		h.Write([]byte(t.Description))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// RankTests moves recommended tests to the front and keeps catalog order
// otherwise.
func RankTests(tests []models.LabTest, recommended []string) []models.LabTest {
	rec := make(map[string]bool, len(recommended))
	for _, id := range recommended {
		rec[id] = true
	}
	out := make([]models.LabTest, len(tests))
	copy(out, tests)
	sort.SliceStable(out, func(i, j int) bool {
		return rec[out[i].ID] && !rec[out[j].ID]
	})
	return out
}

// SelectTests returns the catalog entries for ids, in ids order.
func SelectTests(catalog []models.LabTest, ids []string) []models.LabTest {
	byID := make(map[string]models.LabTest, len(catalog))
	for _, t := range catalog {
		byID[t.ID] = t
	}
	out := make([]models.LabTest, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}
