package domain

import (
	"errors"
	"strings"
	"time"
)

// Card-specific validation errors
var (
	// ErrCardUserIDEmpty is returned when a card has no owner.
	ErrCardUserIDEmpty = errors.New("card user ID cannot be empty")

	// ErrCardKoreanEmpty is returned when the front of a card is blank.
	ErrCardKoreanEmpty = errors.New("card korean text cannot be empty")

	// ErrCardEnglishEmpty is returned when the back of a card is blank.
	ErrCardEnglishEmpty = errors.New("card english text cannot be empty")
)

// Card is a single vocabulary flashcard owned by one Telegram user.
// Korean is the front of the card and English the back; the optional
// examples show the word in a sentence.
type Card struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Korean         string    `json:"korean"`
	English        string    `json:"english"`
	ExampleKorean  *string   `json:"example_kr"`
	ExampleEnglish *string   `json:"example_en"`
	CreatedAt      time.Time `json:"created_at"`

	SchedulingState
}

// NewCard builds a card for userID that is due immediately.
// Blank example strings are stored as absent.
func NewCard(userID int64, korean, english string, exampleKorean, exampleEnglish *string, now time.Time) (*Card, error) {
	card := &Card{
		UserID:          userID,
		Korean:          strings.TrimSpace(korean),
		English:         strings.TrimSpace(english),
		ExampleKorean:   optionalText(exampleKorean),
		ExampleEnglish:  optionalText(exampleEnglish),
		CreatedAt:       now.UTC(),
		SchedulingState: NewSchedulingState(now),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.UserID <= 0 {
		return ErrCardUserIDEmpty
	}
	if strings.TrimSpace(c.Korean) == "" {
		return ErrCardKoreanEmpty
	}
	if strings.TrimSpace(c.English) == "" {
		return ErrCardEnglishEmpty
	}
	return c.SchedulingState.Validate()
}

// CardUpdate carries the user-editable fields of a card. Nil fields are
// left untouched.
type CardUpdate struct {
	English        *string `json:"english"`
	ExampleKorean  *string `json:"example_kr"`
	ExampleEnglish *string `json:"example_en"`
}

// IsEmpty reports whether the update changes nothing.
func (u CardUpdate) IsEmpty() bool {
	return u.English == nil && u.ExampleKorean == nil && u.ExampleEnglish == nil
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
