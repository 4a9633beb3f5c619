package srs

import (
	"fmt"
	"strings"
)

// Quality is a recall rating on the SM-2 0-5 scale.
type Quality int

// The qualities a learner can actually submit.
const (
	QualityHard   Quality = 1
	QualityMedium Quality = 3
	QualityEasy   Quality = 5
)

// Difficulty is the coarse label a learner picks after seeing a card.
type Difficulty string

const (
	DifficultyHard   Difficulty = "hard"
	DifficultyMedium Difficulty = "medium"
	DifficultyEasy   Difficulty = "easy"
)

var difficultyQuality = map[Difficulty]Quality{
	DifficultyHard:   QualityHard,
	DifficultyMedium: QualityMedium,
	DifficultyEasy:   QualityEasy,
}

// ParseDifficulty maps a label to a Difficulty, ignoring case and
// surrounding whitespace.
func ParseDifficulty(label string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(label)))
	if _, ok := difficultyQuality[d]; !ok {
		return "", fmt.Errorf("%w: %q (use 'easy', 'medium', or 'hard')", ErrUnknownDifficultyLabel, label)
	}
	return d, nil
}

// Quality returns the rating for d, or zero for an unknown label.
func (d Difficulty) Quality() Quality {
	return difficultyQuality[d]
}

// QualityFromLabel is shorthand for ParseDifficulty followed by Quality.
func QualityFromLabel(label string) (Quality, error) {
	d, err := ParseDifficulty(label)
	if err != nil {
		return 0, err
	}
	return d.Quality(), nil
}

// IsValid reports whether q is one of the ratings the label mapping produces.
func (q Quality) IsValid() bool {
	switch q {
	case QualityHard, QualityMedium, QualityEasy:
		return true
	}
	return false
}
