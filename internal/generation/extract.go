package generation

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ExtractStrategy pulls a JSON object out of model output.
type ExtractStrategy interface {
	Name() string
	// Extract returns the object and true, or false if this strategy
	// found nothing usable.
	Extract(text string) (json.RawMessage, bool)
}

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?\\s*```")
	flatObjectPattern  = regexp.MustCompile(`\{[^{}]*\}`)
)

// DirectParse accepts text that is already a JSON object.
type DirectParse struct{}

func (DirectParse) Name() string { return "direct" }

func (DirectParse) Extract(text string) (json.RawMessage, bool) {
	return asObject(text)
}

// FencedBlock parses the inside of the first markdown code fence,
// optionally labelled json.
type FencedBlock struct{}

func (FencedBlock) Name() string { return "fenced" }

func (FencedBlock) Extract(text string) (json.RawMessage, bool) {
	m := fencedBlockPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return asObject(m[1])
}

// BraceScan parses the first brace-delimited span with no nested braces.
type BraceScan struct{}

func (BraceScan) Name() string { return "brace" }

func (BraceScan) Extract(text string) (json.RawMessage, bool) {
	m := flatObjectPattern.FindString(text)
	if m == "" {
		return nil, false
	}
	return asObject(m)
}

// DefaultStrategies returns the extraction chain in the order it is tried.
func DefaultStrategies() []ExtractStrategy {
	return []ExtractStrategy{DirectParse{}, FencedBlock{}, BraceScan{}}
}

// ExtractJSON runs strategies in order over the trimmed text and returns
// the first object found along with the name of the strategy that found it.
func ExtractJSON(text string, strategies []ExtractStrategy) (json.RawMessage, string, error) {
	text = strings.TrimSpace(text)
	for _, s := range strategies {
		if obj, ok := s.Extract(text); ok {
			return obj, s.Name(), nil
		}
	}
	return nil, "", newMalformedResponse("no JSON object found", text)
}

func asObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &probe); err != nil || probe == nil {
		return nil, false
	}
	return json.RawMessage(s), true
}
