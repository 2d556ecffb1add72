package searcher

import "math"

// Hyperparameters for MCTS

// Initial action value, larger than any achievable return so that every action
// is tried once before UCT comparisons apply.
const OptimisticValue = math.MaxFloat32

const MaxSeed = 1_000_000 // Upper bound of sampled chance seeds

const Tolerance = 0.001 // Max observation distance for reusing a subtree
