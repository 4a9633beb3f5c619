package api

import "github.com/phrazzld/tili-api/internal/domain"

// TranslateRequest is the body of POST /api/cards/translate.
type TranslateRequest struct {
	Word string `json:"word" validate:"required,notblank,max=100"`
}

// CreateCardRequest is the body of POST /api/cards.
type CreateCardRequest struct {
	Korean         string  `json:"korean"     validate:"required,notblank,max=200"`
	English        string  `json:"english"    validate:"required,notblank,max=500"`
	ExampleKorean  *string `json:"example_kr" validate:"omitempty,max=1000"`
	ExampleEnglish *string `json:"example_en" validate:"omitempty,max=1000"`
}

// UpdateCardRequest is the body of PUT /api/cards/{id}. Omitted fields are
// left unchanged; an empty example clears it.
type UpdateCardRequest struct {
	English        *string `json:"english"    validate:"omitempty,max=500"`
	ExampleKorean  *string `json:"example_kr" validate:"omitempty,max=1000"`
	ExampleEnglish *string `json:"example_en" validate:"omitempty,max=1000"`
}

// ToUpdate converts the request into a domain.CardUpdate.
func (r UpdateCardRequest) ToUpdate() domain.CardUpdate {
	return domain.CardUpdate{
		English:        r.English,
		ExampleKorean:  r.ExampleKorean,
		ExampleEnglish: r.ExampleEnglish,
	}
}

// ReviewRequest is the body of POST /api/practice/review.
type ReviewRequest struct {
	CardID     int64  `json:"card_id"    validate:"required,gt=0"`
	Difficulty string `json:"difficulty" validate:"required"`
}

// DeleteResponse acknowledges a deleted card.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
