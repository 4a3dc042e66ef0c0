package models

// ScoreBreakdown holds the weighted sub-scores of one (item, category) pair
type ScoreBreakdown struct {
	Name            float64 `json:"name"`
	Tags            float64 `json:"tags"`
	Price           float64 `json:"price"`
	Icon            float64 `json:"icon"`
	Characteristics float64 `json:"characteristics"`
	Total           float64 `json:"total"`
}

// CategoryScore pairs a category with its score for an item
type CategoryScore struct {
	Category  *Category      `json:"category"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// CategorizationResult is the engine's suggestion for one item. It is never persisted.
type CategorizationResult struct {
	Item              *Item           `json:"item"`
	SuggestedCategory *Category       `json:"suggested_category"`
	Confidence        float64         `json:"confidence"`
	Reasoning         string          `json:"reasoning"`
	Alternatives      []CategoryScore `json:"alternatives"`
}

// MergeGroup is a set of items judged to be the same product at different sizes
type MergeGroup struct {
	Key              string    `json:"key"`
	Base             *Item     `json:"base_item"`
	Duplicates       []*Item   `json:"duplicates"`
	ProposedVariants []Variant `json:"proposed_variants"`
}

// Members returns the base item followed by the duplicates
func (g *MergeGroup) Members() []*Item {
	out := make([]*Item, 0, len(g.Duplicates)+1)
	if g.Base != nil {
		out = append(out, g.Base)
	}
	return append(out, g.Duplicates...)
}

// MergeFailure records why one group could not be merged
type MergeFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// MergeReport summarises a bulk merge. Updated counts groups whose base item
// was rewritten, including groups that later failed to archive a member.
type MergeReport struct {
	Groups   int            `json:"groups"`
	Merged   int            `json:"merged"`
	Updated  int            `json:"updated"`
	Failed   int            `json:"failed"`
	Archived int            `json:"archived"`
	Failures []MergeFailure `json:"failures"`
}

// AssignReport summarises a bulk category assignment
type AssignReport struct {
	Considered int      `json:"considered"`
	Assigned   int      `json:"assigned"`
	Skipped    int      `json:"skipped"`
	Failed     int      `json:"failed"`
	FailedIDs  []string `json:"failed_ids"`
}

// ApplySuggestionsRequest selects which suggestions to apply; empty means all
type ApplySuggestionsRequest struct {
	ItemIDs []string `json:"item_ids" validate:"omitempty,dive,required"`
}

// MergeRequest selects which groups to merge
type MergeRequest struct {
	Keys []string `json:"keys" validate:"omitempty,dive,required"`
	All  bool     `json:"all"`
}

// MediaSignRequest asks for a presigned upload URL
type MediaSignRequest struct {
	KeyBase     string `json:"key_base" validate:"required,max=64"`
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"content_type" validate:"omitempty,max=100"`
}

// MediaSignResponse carries the presigned upload target
type MediaSignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	ViewURL   string `json:"view_url"`
	Method    string `json:"method"`
	ExpiresIn int    `json:"expires_in"`
}

// MediaDeleteRequest names a stored media object to remove
type MediaDeleteRequest struct {
	Key string `json:"key" validate:"required,startswith=media/,max=512"`
}
