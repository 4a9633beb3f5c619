package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewCard(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("KST", 9*3600))

	card, err := NewCard(42, " 사과 ", "apple", strPtr("사과를 먹어요."), strPtr("  "), now)
	require.NoError(t, err)

	assert.Equal(t, int64(42), card.UserID)
	assert.Equal(t, "사과", card.Korean)
	assert.Equal(t, "apple", card.English)
	require.NotNil(t, card.ExampleKorean)
	assert.Equal(t, "사과를 먹어요.", *card.ExampleKorean)
	assert.Nil(t, card.ExampleEnglish, "blank example should be dropped")
	assert.Equal(t, time.UTC, card.CreatedAt.Location())
	assert.Equal(t, DefaultEaseFactor, card.EaseFactor)
	assert.Zero(t, card.IntervalDays)
	assert.Zero(t, card.Repetitions)
	assert.True(t, card.NextDue.Equal(now))
	assert.True(t, card.IsDue(now))
}

func TestNewCard_Validation(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name    string
		userID  int64
		korean  string
		english string
		wantErr error
	}{
		{name: "missing owner", userID: 0, korean: "물", english: "water", wantErr: ErrCardUserIDEmpty},
		{name: "negative owner", userID: -3, korean: "물", english: "water", wantErr: ErrCardUserIDEmpty},
		{name: "blank korean", userID: 1, korean: "   ", english: "water", wantErr: ErrCardKoreanEmpty},
		{name: "blank english", userID: 1, korean: "물", english: "", wantErr: ErrCardEnglishEmpty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCard(tc.userID, tc.korean, tc.english, nil, nil, now)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSchedulingState_Validate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name  string
		state SchedulingState
		ok    bool
	}{
		{name: "defaults", state: NewSchedulingState(now), ok: true},
		{name: "ease at floor", state: SchedulingState{EaseFactor: 1.3, NextDue: now}, ok: true},
		{name: "ease below floor", state: SchedulingState{EaseFactor: 1.29, NextDue: now}},
		{name: "negative interval", state: SchedulingState{EaseFactor: 2.5, IntervalDays: -1, NextDue: now}},
		{name: "negative repetitions", state: SchedulingState{EaseFactor: 2.5, Repetitions: -1, NextDue: now}},
		{name: "zero due time", state: SchedulingState{EaseFactor: 2.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.state.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidSchedulingState)
		})
	}
}

func TestBucket(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:   "new",
		1:   "learning",
		6:   "learning",
		7:   "young",
		30:  "young",
		31:  "mature",
		365: "mature",
	}
	for interval, want := range cases {
		assert.Equal(t, want, Bucket(interval), "interval %d", interval)
	}
}

func TestCardUpdate_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, CardUpdate{}.IsEmpty())
	assert.False(t, CardUpdate{English: strPtr("pear")}.IsEmpty())
	assert.False(t, CardUpdate{ExampleEnglish: strPtr("")}.IsEmpty())
}
