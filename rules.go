package resonance

// Rules is the per-variant strategy the resonance-search state machine (C4)
// drives. It replaces the dynamic dispatch / subclass hierarchy the source
// relies on: Engine[W] is generic over the weight type W, and each variant
// package supplies one concrete Rules[W] implementation (spec.md DESIGN
// NOTES, "Dynamic dispatch over per-variant activation/match/update").
//
// All four methods must be pure: given the same (input, weight, params)
// they must return the same result, and Update must not mutate weight; it
// returns a fresh value that the store installs.
type Rules[W any] interface {
	// Activation computes a score ranking how strongly input excites the
	// category currently holding weight (higher wins; quadratic's is <= 0).
	Activation(input []float64, weight W, params Params) float64

	// Match computes the normalized similarity compared against
	// params.Vigilance (or an equivalent scalar the variant documents).
	Match(input []float64, weight W, params Params) float64

	// Update returns the new weight for a category that has resonated with
	// input and is committing to learn it.
	Update(input []float64, weight W, params Params) W

	// NewWeight builds the weight for a brand new category committed with
	// input (the "fast commitment" path: most variants just copy/encode the
	// input; Gaussian-family variants seed mean/covariance from it).
	NewWeight(input []float64, params Params) W
}
