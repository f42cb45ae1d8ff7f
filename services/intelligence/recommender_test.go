package ai

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"pathlab/models"
)

type stubGenerator struct {
	out    string
	err    error
	calls  int
	prompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.out, s.err
}

type mapCache map[string][]string

func (m mapCache) Get(_ context.Context, key string) ([]string, bool) {
	ids, ok := m[key]
	return ids, ok
}

func (m mapCache) Set(_ context.Context, key string, ids []string, _ time.Duration) {
	m[key] = ids
}

var catalog = []models.LabTest{
	{ID: "t1", Name: "Complete Blood Count (CBC)", Description: "anemia, infection"},
	{ID: "t2", Name: "Thyroid Profile (Total)", Description: "thyroid gland function"},
	{ID: "t4", Name: "HbA1c", Description: "diabetes"},
	{ID: "t5", Name: "Vitamin D (25-OH)", Description: "bone health"},
}

func TestRecommendParsesAndFilters(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"plain", `["t2","t4"]`, []string{"t2", "t4"}},
		{"fenced", "```json\n[\"t1\"]\n```", []string{"t1"}},
		{"unknown and duplicate ids", `["t9","t1","t1","t2"]`, []string{"t1", "t2"}},
		{"truncated to three", `["t1","t2","t4","t5"]`, []string{"t1", "t2", "t4"}},
		{"empty array", `[]`, []string{}},
		{"not json", `I suggest CBC`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecommender(&stubGenerator{out: tt.out}, nil, 0, nil)
			got, err := r.Recommend(context.Background(), "tired all the time", catalog)
			if err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecommendWithoutKeyOrSymptoms(t *testing.T) {
	r := NewRecommender(nil, nil, 0, nil)
	if got, err := r.Recommend(context.Background(), "fever", catalog); err != nil || len(got) != 0 {
		t.Fatalf("no key = %v, %v", got, err)
	}

	gen := &stubGenerator{out: `["t1"]`}
	r = NewRecommender(gen, nil, 0, nil)
	if got, _ := r.Recommend(context.Background(), "   ", catalog); len(got) != 0 || gen.calls != 0 {
		t.Fatalf("blank symptoms = %v, calls = %d", got, gen.calls)
	}
}

func TestRecommendGeneratorErrorIsSwallowed(t *testing.T) {
	r := NewRecommender(&stubGenerator{err: errors.New("quota exceeded")}, nil, 0, nil)
	got, err := r.Recommend(context.Background(), "fever", catalog)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestRecommendPromptAndCache(t *testing.T) {
	gen := &stubGenerator{out: `["t2"]`}
	r := NewRecommender(gen, mapCache{}, time.Minute, nil)
	ctx := context.Background()

	first, _ := r.Recommend(ctx, "weight gain and fatigue", catalog)
	second, _ := r.Recommend(ctx, "weight gain and fatigue", catalog)
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached result differs: %v vs %v", first, second)
	}
	if !strings.Contains(gen.prompt, "t2: Thyroid Profile (Total) (thyroid gland function)") {
		t.Fatalf("prompt missing catalog line:\n%s", gen.prompt)
	}
}

func TestRecommendCacheTracksCatalogText(t *testing.T) {
	gen := &stubGenerator{out: `["t2"]`}
	r := NewRecommender(gen, mapCache{}, time.Minute, nil)
	ctx := context.Background()

	if _, err := r.Recommend(ctx, "weight gain and fatigue", catalog); err != nil {
		t.Fatal(err)
	}

	edited := append([]models.LabTest(nil), catalog...)
	edited[1].Description = "TSH, T3 and T4 levels"
	if _, err := r.Recommend(ctx, "weight gain and fatigue", edited); err != nil {
		t.Fatal(err)
	}
	if gen.calls != 2 {
		t.Fatalf("generator calls = %d, want a fresh call after a description edit", gen.calls)
	}
	if !strings.Contains(gen.prompt, "TSH, T3 and T4 levels") {
		t.Fatalf("prompt still has the old description:\n%s", gen.prompt)
	}

	renamed := append([]models.LabTest(nil), catalog...)
	renamed[0].Name = "CBC with ESR"
	if cacheKey("x", renamed) == cacheKey("x", catalog) {
		t.Fatal("renaming a test must change the cache key")
	}

	reordered := []models.LabTest{catalog[3], catalog[2], catalog[1], catalog[0]}
	if cacheKey("x", reordered) != cacheKey("x", catalog) {
		t.Fatal("cache key should not depend on catalog order")
	}
}

func TestRankTests(t *testing.T) {
	ranked := RankTests(catalog, []string{"t5", "t2"})
	var ids []string
	for _, tt := range ranked {
		ids = append(ids, tt.ID)
	}
	want := []string{"t2", "t5", "t1", "t4"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("order = %v, want %v", ids, want)
	}
	if catalog[0].ID != "t1" {
		t.Fatal("RankTests must not reorder its input")
	}
}
