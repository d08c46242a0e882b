package search

import (
	"errors"
	"testing"

	"github.com/hyperjump/palette/internal/models"
)

func TestNormalize_PerCategoryPayloads(t *testing.T) {
	docs, dropped := Normalize(models.CategoryDocs, []models.RawHit{
		{ID: "d1", Position: 1, Fields: map[string]interface{}{
			"title": "Install Vault", "url": "/vault/docs/install",
			"products": []interface{}{"vault", "hcp"},
		}},
	})
	if dropped != 0 || len(docs) != 1 {
		t.Fatalf("docs: got %d hits, %d dropped", len(docs), dropped)
	}
	p, ok := docs[0].Payload.(*models.DocumentationPayload)
	if !ok {
		t.Fatalf("docs payload type %T", docs[0].Payload)
	}
	if p.Title != "Install Vault" || len(p.Products) != 2 {
		t.Errorf("unexpected payload %+v", p)
	}
	if !docs[0].Consistent() {
		t.Error("hit payload inconsistent with category")
	}

	tuts, _ := Normalize(models.CategoryTutorials, []models.RawHit{
		{ID: "t1", Position: 2, Fields: map[string]interface{}{
			"title": "Get started", "url": "/tutorials/start", "products": "terraform", "read_time": "5min",
		}},
	})
	tp := tuts[0].Payload.(*models.TutorialPayload)
	if tuts[0].Position != 2 || tp.ReadTime != "5min" || len(tp.Products) != 1 || tp.Products[0] != "terraform" {
		t.Errorf("unexpected tutorial hit %+v %+v", tuts[0], tp)
	}

	ints, _ := Normalize(models.CategoryIntegrations, []models.RawHit{
		{ID: "i1", Position: 1, Fields: map[string]interface{}{
			"name": "AWS", "url": "/integrations/aws", "product": "vault", "tier": "official",
		}},
	})
	ip := ints[0].Payload.(*models.IntegrationPayload)
	if ip.DisplayTitle() != "AWS" || ip.Product != "vault" {
		t.Errorf("unexpected integration payload %+v", ip)
	}
}

func TestNormalize_DropsMalformedAndKeepsOrder(t *testing.T) {
	hits, dropped := Normalize(models.CategoryDocs, []models.RawHit{
		{ID: "a", Position: 1, Fields: map[string]interface{}{"title": "A", "url": "/a"}},
		{ID: "b", Position: 2, Fields: map[string]interface{}{"title": "B"}},
		{ID: "", Position: 3, Fields: map[string]interface{}{"title": "C", "url": "/c"}},
		{ID: "d", Position: 4, Fields: map[string]interface{}{"title": "D", "url": "/d"}},
	})
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if len(hits) != 2 || hits[0].ID != "a" || hits[1].ID != "d" {
		t.Errorf("unexpected hits %+v", hits)
	}
}

func TestNormalizeHit_Errors(t *testing.T) {
	_, err := NormalizeHit(models.CategoryIntegrations, models.RawHit{ID: "x", Fields: map[string]interface{}{"title": "not a name"}})
	if !errors.Is(err, ErrMalformedHit) {
		t.Errorf("expected ErrMalformedHit, got %v", err)
	}
	_, err = NormalizeHit("videos", models.RawHit{ID: "x"})
	if !errors.Is(err, models.ErrUnknownCategory) {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}
