package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		text         string
		wantStrategy string
		wantJSON     string
	}{
		{
			name:         "raw object",
			text:         `{"korean":"물","english":"water"}`,
			wantStrategy: "direct",
			wantJSON:     `{"korean":"물","english":"water"}`,
		},
		{
			name:         "raw object with surrounding whitespace",
			text:         "\n  {\"a\": 1}  \n",
			wantStrategy: "direct",
			wantJSON:     `{"a": 1}`,
		},
		{
			name:         "json fenced block",
			text:         "```json\n{\"korean\":\"사과\"}\n```",
			wantStrategy: "fenced",
			wantJSON:     `{"korean":"사과"}`,
		},
		{
			name:         "unlabelled fence with prose",
			text:         "Here you go:\n```\n{\"a\": {\"b\": 2}}\n```\nEnjoy!",
			wantStrategy: "fenced",
			wantJSON:     `{"a": {"b": 2}}`,
		},
		{
			name:         "fence on one line",
			text:         "```json {\"a\":1} ```",
			wantStrategy: "fenced",
			wantJSON:     `{"a":1}`,
		},
		{
			name:         "object inside prose",
			text:         `Sure! {"korean":"책","english":"book"} Hope that helps.`,
			wantStrategy: "brace",
			wantJSON:     `{"korean":"책","english":"book"}`,
		},
		{
			name:         "broken fence falls back to brace scan",
			text:         "```json\n[1, 2]\n```\nand {\"b\": 2}",
			wantStrategy: "brace",
			wantJSON:     `{"b": 2}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			obj, strategy, err := ExtractJSON(tc.text, DefaultStrategies())
			require.NoError(t, err)
			assert.Equal(t, tc.wantStrategy, strategy)
			assert.JSONEq(t, tc.wantJSON, string(obj))
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Invalid word",
		`["korean","english"]`,
		`"just a string"`,
		"{not json}",
		`{"a": "unterminated}`,
		// only the first flat span is tried
		"```json\n{\"a\": 1,}\n```\nor {\"b\": 2}",
	}

	for _, in := range inputs {
		_, _, err := ExtractJSON(in, DefaultStrategies())
		assert.ErrorIs(t, err, ErrMalformedResponse, "input %q", in)
	}
}

func TestExtractJSON_ExcerptIsBounded(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("가", 500)
	_, _, err := ExtractJSON(text, DefaultStrategies())

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 200, len([]rune(malformed.Excerpt)))
	assert.True(t, strings.HasPrefix(text, malformed.Excerpt))
}

func TestExtractJSON_CustomChain(t *testing.T) {
	t.Parallel()

	_, _, err := ExtractJSON("prefix {\"a\":1}", []ExtractStrategy{DirectParse{}})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestIsTransientStatus(t *testing.T) {
	t.Parallel()

	transient := []int{408, 409, 429, 500, 502, 503, 529}
	permanent := []int{400, 401, 403, 404, 422}

	for _, code := range transient {
		assert.True(t, IsTransientStatus(code), "status %d", code)
		assert.ErrorIs(t, NewStatusError("test", code, "x"), ErrTransientFailure)
	}
	for _, code := range permanent {
		assert.False(t, IsTransientStatus(code), "status %d", code)
		assert.NotErrorIs(t, NewStatusError("test", code, "x"), ErrTransientFailure)
	}
}
