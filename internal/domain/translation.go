package domain

// TranslationRecord is the structured result of translating one word:
// the (possibly corrected) Korean text, its English meaning and an
// example sentence in both languages. It is returned to the caller and
// never stored.
type TranslationRecord struct {
	Korean         string `json:"korean" validate:"required,notblank"`
	English        string `json:"english" validate:"required,notblank"`
	ExampleKorean  string `json:"example_kr" validate:"required,notblank"`
	ExampleEnglish string `json:"example_en" validate:"required,notblank"`
}
