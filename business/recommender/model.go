package recommender

import (
	"time"
)

// ModelFormatVersion is bumped whenever the persisted layout of
// FactorModel changes. A stored model with a different version is treated
// as absent and retrained.
const ModelFormatVersion = 1

// FactorModel is the trained latent-factor model plus the interaction
// matrix and index map it was trained on, persisted as one unit. It is
// owned by the trainer; scorers only read it. Replace the pointer on
// retrain, never mutate a published model.
type FactorModel struct {
	FormatVersion int       `json:"format_version"`
	Factors       int       `json:"factors"`
	TrainedAt     time.Time `json:"trained_at"`

	// UserFactors[i] is the latent vector of Matrix.Users[i];
	// ItemFactors[j] the vector of Matrix.Activities[j].
	UserFactors [][]float64 `json:"user_factors"`
	ItemFactors [][]float64 `json:"item_factors"`

	Matrix *InteractionMatrix `json:"matrix"`
}

func (m *FactorModel) IsEmpty() bool {
	return m == nil ||
		m.Matrix == nil ||
		m.Matrix.NumUsers() == 0 ||
		m.Matrix.NumActivities() == 0 ||
		len(m.UserFactors) == 0 ||
		len(m.ItemFactors) == 0
}

// predict is the reconstructed rating for (user row, activity column).
func (m *FactorModel) predict(userIdx, itemIdx int) float64 {
	return dot(m.UserFactors[userIdx], m.ItemFactors[itemIdx])
}
