package recommender

import (
	"math"
	"math/rand"
	"time"
)

// fitALS factorizes the rating matrix by alternating least squares:
// holding item factors fixed, each user's vector is the ridge-regression
// solution over that user's observed ratings, then the roles swap.
// Initialization is random, so factor values differ between runs; the
// shapes depend only on the matrix.
func fitALS(m *InteractionMatrix, cfg Config) (userFactors, itemFactors [][]float64) {
	k := cfg.LatentFactors
	if k <= 0 {
		k = 1
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	userFactors = randomFactors(rnd, m.NumUsers(), k)
	itemFactors = randomFactors(rnd, m.NumActivities(), k)

	// Column-wise view of the matrix for the item solve.
	cols := make([]map[int]float64, m.NumActivities())
	for j := range cols {
		cols[j] = make(map[int]float64)
	}
	for i, row := range m.Rows {
		for j, r := range row {
			if j >= 0 && j < len(cols) {
				cols[j][i] = r
			}
		}
	}

	for iter := 0; iter < cfg.TrainingIterations; iter++ {
		for i, row := range m.Rows {
			solveFactors(userFactors[i], row, itemFactors, cfg)
		}
		for j, col := range cols {
			solveFactors(itemFactors[j], col, userFactors, cfg)
		}
	}

	return userFactors, itemFactors
}

func randomFactors(rnd *rand.Rand, n, k int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		v := make([]float64, k)
		for f := range v {
			v[f] = rnd.Float64() * 0.1
		}
		out[i] = v
	}
	return out
}

// solveFactors overwrites target with the ridge solution of
// (F^T F + lambda I) x = F^T r over the observed entries, where F holds
// the fixed side's factors and r the boosted ratings. A row with no
// observations keeps its current vector.
func solveFactors(target []float64, observed map[int]float64, fixed [][]float64, cfg Config) {
	if len(observed) == 0 {
		return
	}

	k := len(target)
	A := make([][]float64, k)
	for i := range A {
		A[i] = make([]float64, k)
		A[i][i] = cfg.Regularization
	}
	b := make([]float64, k)

	boost := cfg.RatingBoost
	if boost <= 0 {
		boost = 1
	}

	for idx, rating := range observed {
		if idx < 0 || idx >= len(fixed) {
			continue
		}
		f := fixed[idx]
		r := rating * boost
		for i := 0; i < k; i++ {
			fi := f[i]
			b[i] += r * fi
			for j := i; j < k; j++ {
				A[i][j] += fi * f[j]
			}
		}
	}

	// Mirror the upper triangle; A is symmetric.
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			A[i][j] = A[j][i]
		}
	}

	x, ok := solveLinearSystem(A, b)
	if !ok {
		return
	}
	copy(target, x)
}

// solveLinearSystem solves A x = b by Gauss-Jordan elimination with
// partial pivoting. Returns false when A is numerically singular; the
// regularization term makes that unreachable in practice.
func solveLinearSystem(A [][]float64, b []float64) ([]float64, bool) {
	n := len(A)
	aug := make([][]float64, n)
	for i := range aug {
		aug[i] = make([]float64, n+1)
		copy(aug[i], A[i])
		aug[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(aug[pivot][col]) < 1e-12 {
			return nil, false
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		p := aug[col][col]
		for j := col; j <= n; j++ {
			aug[col][j] /= p
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			if factor == 0 {
				continue
			}
			for j := col; j <= n; j++ {
				aug[r][j] -= factor * aug[col][j]
			}
		}
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = aug[i][n]
	}
	return x, true
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := 0; i < len(a) && i < len(b); i++ {
		sum += a[i] * b[i]
	}
	return sum
}
