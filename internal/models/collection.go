package models

// HitCollection maps each category to its hits in backend response order.
// A collection is never mutated once shared; With returns an updated copy.
type HitCollection map[Category][]Hit

// NewHitCollection returns an empty collection.
func NewHitCollection() HitCollection {
	return make(HitCollection, len(Categories))
}

// With returns a copy of c whose slice for category is replaced by hits.
func (c HitCollection) With(category Category, hits []Hit) HitCollection {
	out := make(HitCollection, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[category] = append([]Hit(nil), hits...)
	return out
}

// Has reports whether category has been populated, even if with zero hits.
func (c HitCollection) Has(category Category) bool {
	_, ok := c[category]
	return ok
}

// Count returns the number of hits for category.
func (c HitCollection) Count(category Category) int {
	return len(c[category])
}

// Len returns the total number of hits across the known categories.
func (c HitCollection) Len() int {
	n := 0
	for _, category := range Categories {
		n += len(c[category])
	}
	return n
}

// MergedResultList is the "all results" view derived from a HitCollection.
type MergedResultList []Hit

// IDs returns "category/id" keys in list order.
func (l MergedResultList) IDs() []string {
	ids := make([]string, len(l))
	for i, h := range l {
		ids[i] = h.Key()
	}
	return ids
}

// Key returns an identifier unique across categories.
func (h Hit) Key() string {
	return string(h.Category) + "/" + h.ID
}

// Consistent reports whether the payload type matches the hit's category.
func (h Hit) Consistent() bool {
	return h.Payload != nil && h.Payload.category() == h.Category
}
