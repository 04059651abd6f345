package domain

// RecommendedItem is one entry of the ranked output served to clients.
// Type is always "activity" today; the field exists so events or reels can
// join the ranking later without a wire change.
type RecommendedItem struct {
	ID   uint64 `json:"id"`
	Type string `json:"type"`
}

const RecommendedItemTypeActivity = "activity"
