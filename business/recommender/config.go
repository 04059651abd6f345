package recommender

// Config carries the scoring and training constants of the hybrid engine.
// The defaults are the contract values recorded rankings were produced
// with; change them only if reproducibility against recorded rankings
// does not matter.
type Config struct {
	// InteractionWeights maps an interaction type to the rating it implies
	// when the row carries no explicit rating. Unknown types resolve to 0.
	InteractionWeights map[string]float64

	// PreferenceDecayRate is the exponential decay applied per day since a
	// preference row was last updated.
	PreferenceDecayRate float64
	PreferenceLevelMin  float64
	PreferenceLevelMax  float64

	// RatingMax bounds every resolved interaction rating to [0, RatingMax].
	RatingMax float64

	// InteractionBonus is added to the content-based score of any activity
	// the user already interacted with.
	InteractionBonus float64

	// ALS hyperparameters.
	LatentFactors      int
	Regularization     float64
	TrainingIterations int

	// RatingBoost scales observed ratings inside the ALS fit. It does not
	// change the stored interaction matrix.
	RatingBoost float64

	// ResultSize caps every ranked list the engine produces.
	ResultSize int

	// SimilarUsers is how many latent-space neighbors feed the
	// collaborative neighbor expansion.
	SimilarUsers int

	// NeighborRatingFloor is the minimum matrix rating for a neighbor's
	// activity to join the expansion.
	NeighborRatingFloor float64

	// Positional merge weights: cf[i] scores CFBaseWeight-i and cbf[i]
	// scores CBFBaseWeight-i; collaborative signal dominates when both
	// scorers agree.
	CFBaseWeight  int
	CBFBaseWeight int
}

const (
	defaultPreferenceDecayRate = 0.05
	defaultPreferenceLevelMin  = 1.0
	defaultPreferenceLevelMax  = 5.0
	defaultRatingMax           = 5.0
	defaultInteractionBonus    = 5.0
	defaultLatentFactors       = 150
	defaultRegularization      = 0.05
	defaultTrainingIterations  = 40
	defaultRatingBoost         = 5.0
	defaultResultSize          = 10
	defaultSimilarUsers        = 5
	defaultNeighborRatingFloor = 4.0
	defaultCFBaseWeight        = 30
	defaultCBFBaseWeight       = 15
)

func DefaultConfig() Config {
	return Config{
		InteractionWeights: map[string]float64{
			"view":     1,
			"share":    1,
			"save":     2,
			"like":     3,
			"rate":     5,
			"purchase": 5,
		},

		PreferenceDecayRate: defaultPreferenceDecayRate,
		PreferenceLevelMin:  defaultPreferenceLevelMin,
		PreferenceLevelMax:  defaultPreferenceLevelMax,

		RatingMax:        defaultRatingMax,
		InteractionBonus: defaultInteractionBonus,

		LatentFactors:      defaultLatentFactors,
		Regularization:     defaultRegularization,
		TrainingIterations: defaultTrainingIterations,
		RatingBoost:        defaultRatingBoost,

		ResultSize:          defaultResultSize,
		SimilarUsers:        defaultSimilarUsers,
		NeighborRatingFloor: defaultNeighborRatingFloor,

		CFBaseWeight:  defaultCFBaseWeight,
		CBFBaseWeight: defaultCBFBaseWeight,
	}
}
