package auth

import (
	"encoding/json"
	"fmt"
	"math"
)

// Identity is the Telegram user a verified init data payload speaks for.
// It lives for a single request and is never stored.
type Identity struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsPremium    bool   `json:"is_premium,omitempty"`

	// Attributes holds the full decoded user object, including fields
	// Telegram may add later.
	Attributes map[string]any `json:"-"`
}

// DisplayName returns the best human-readable name available.
func (i *Identity) DisplayName() string {
	switch {
	case i.Username != "":
		return i.Username
	case i.LastName != "":
		return i.FirstName + " " + i.LastName
	default:
		return i.FirstName
	}
}

func parseIdentity(raw []byte) (*Identity, error) {
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil || attrs == nil {
		return nil, fmt.Errorf("%w: user is not a JSON object", ErrMissingIdentity)
	}

	id, ok := attrs["id"].(float64)
	if !ok || id != math.Trunc(id) || math.Abs(id) > 1<<53 {
		return nil, fmt.Errorf("%w: user has no numeric id", ErrMissingIdentity)
	}

	identity := &Identity{ID: int64(id), Attributes: attrs}
	identity.FirstName, _ = attrs["first_name"].(string)
	identity.LastName, _ = attrs["last_name"].(string)
	identity.Username, _ = attrs["username"].(string)
	identity.LanguageCode, _ = attrs["language_code"].(string)
	identity.IsPremium, _ = attrs["is_premium"].(bool)

	return identity, nil
}
