package domain

// IntervalDistribution buckets a user's cards by their current interval.
type IntervalDistribution struct {
	New      int `json:"new"`
	Learning int `json:"learning"`
	Young    int `json:"young"`
	Mature   int `json:"mature"`
}

// CardStats summarises a user's collection.
type CardStats struct {
	Total        int                  `json:"total"`
	Due          int                  `json:"due"`
	Distribution IntervalDistribution `json:"distribution"`
}

// Interval bucket boundaries, in days.
const (
	LearningMaxInterval = 6
	YoungMaxInterval    = 30
)

// Bucket returns the distribution bucket name for an interval:
// 0 is new, 1-6 learning, 7-30 young, anything longer mature.
func Bucket(intervalDays int) string {
	switch {
	case intervalDays <= 0:
		return "new"
	case intervalDays <= LearningMaxInterval:
		return "learning"
	case intervalDays <= YoungMaxInterval:
		return "young"
	default:
		return "mature"
	}
}
