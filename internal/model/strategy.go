package model

// Sort strategy constants
const (
	SortStrategyInsertion  = "insertion"
	SortStrategyComparison = "comparison"
)

// Search strategy constants
const (
	SearchStrategyLinear = "linear"
)

// SortStrategyDisplayName returns a human-readable label for a sort strategy
func SortStrategyDisplayName(strategy string) string {
	switch strategy {
	case SortStrategyInsertion:
		return "Insertion sort"
	case SortStrategyComparison:
		return "Comparison sort"
	default:
		return strategy
	}
}

// ValidSortStrategies returns all valid sort strategy names
func ValidSortStrategies() []string {
	return []string{SortStrategyInsertion, SortStrategyComparison}
}

// ValidSearchStrategies returns all valid search strategy names
func ValidSearchStrategies() []string {
	return []string{SearchStrategyLinear}
}
