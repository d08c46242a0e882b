package models

// Tab describes one per-category view of a HitCollection.
type Tab struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Icon     string   `json:"icon"`
	Count    int      `json:"count"`
	Hits     []Hit    `json:"hits"`
}

// SuggestedPage is a link shown when the search input is empty.
type SuggestedPage struct {
	Text string `json:"text"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// ProductTag is the current product context of a search.
type ProductTag struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query      string           `json:"query"`
	ProductTag *ProductTag      `json:"product_tag,omitempty"`
	Results    MergedResultList `json:"results"`
	Tabs       []Tab            `json:"tabs"`
	Total      int              `json:"total"`
	QueryTime  int64            `json:"query_time_ms"`
	// RecentSearches and SuggestedPages are populated when the query is empty.
	RecentSearches  []string        `json:"recent_searches,omitempty"`
	SuggestedPages  []SuggestedPage `json:"suggested_pages,omitempty"`
	TutorialLibrary *SuggestedPage  `json:"tutorial_library,omitempty"`
}
