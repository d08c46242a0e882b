package search

import (
	"fmt"
	"testing"

	"github.com/hyperjump/palette/internal/models"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func docHit(id string, pos int) models.Hit {
	return models.Hit{ID: id, Category: models.CategoryDocs, Position: pos,
		Payload: &models.DocumentationPayload{Title: id, URL: "/docs/" + id}}
}

func tutorialHit(id string, pos int) models.Hit {
	return models.Hit{ID: id, Category: models.CategoryTutorials, Position: pos,
		Payload: &models.TutorialPayload{Title: id, URL: "/tutorials/" + id}}
}

func integrationHit(id string, pos int) models.Hit {
	return models.Hit{ID: id, Category: models.CategoryIntegrations, Position: pos,
		Payload: &models.IntegrationPayload{Name: id, URL: "/integrations/" + id}}
}

func TestMerge_SortsByPositionWithStableTies(t *testing.T) {
	coll := models.NewHitCollection().
		With(models.CategoryDocs, []models.Hit{docHit("1", 5)}).
		With(models.CategoryTutorials, []models.Hit{tutorialHit("2", 3), tutorialHit("3", 3)})

	merged := Merge(coll)
	assert.Equal(t, []string{"tutorials/2", "tutorials/3", "docs/1"}, merged.IDs())
}

func TestMerge_TiesAcrossCategoriesFollowFixedOrder(t *testing.T) {
	coll := models.NewHitCollection().
		With(models.CategoryIntegrations, []models.Hit{integrationHit("i", 1)}).
		With(models.CategoryTutorials, []models.Hit{tutorialHit("t", 1)}).
		With(models.CategoryDocs, []models.Hit{docHit("d", 1)})

	assert.Equal(t, []string{"docs/d", "tutorials/t", "integrations/i"}, Merge(coll).IDs())
}

func TestMerge_Empty(t *testing.T) {
	merged := Merge(models.NewHitCollection())
	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}

func genCollection(t *rapid.T) models.HitCollection {
	coll := models.NewHitCollection()
	makers := map[models.Category]func(string, int) models.Hit{
		models.CategoryDocs:         docHit,
		models.CategoryTutorials:    tutorialHit,
		models.CategoryIntegrations: integrationHit,
	}
	for _, category := range models.Categories {
		if !rapid.Bool().Draw(t, "has_"+string(category)) {
			continue
		}
		positions := rapid.SliceOfN(rapid.IntRange(1, 6), 0, 8).Draw(t, "pos_"+string(category))
		hits := make([]models.Hit, len(positions))
		for i, p := range positions {
			hits[i] = makers[category](fmt.Sprintf("%s%d", category, i), p)
		}
		coll = coll.With(category, hits)
	}
	return coll
}

func TestMerge_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coll := genCollection(t)
		merged := Merge(coll)

		if len(merged) != coll.Len() {
			t.Fatalf("merged length %d, want %d", len(merged), coll.Len())
		}

		// Concatenation index of every hit, for checking tie order.
		order := make(map[string]int)
		for _, category := range models.Categories {
			for _, h := range coll[category] {
				order[h.Key()] = len(order)
			}
		}
		for i := 1; i < len(merged); i++ {
			prev, cur := merged[i-1], merged[i]
			if prev.Position > cur.Position {
				t.Fatalf("not sorted at %d: %d > %d", i, prev.Position, cur.Position)
			}
			if prev.Position == cur.Position && order[prev.Key()] > order[cur.Key()] {
				t.Fatalf("tie order broken at %d: %s before %s", i, prev.Key(), cur.Key())
			}
		}
	})
}

func TestMerge_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coll := genCollection(t)
		a, b := Merge(coll).IDs(), Merge(coll).IDs()
		if fmt.Sprint(a) != fmt.Sprint(b) {
			t.Fatalf("merge not deterministic: %v vs %v", a, b)
		}
	})
}
