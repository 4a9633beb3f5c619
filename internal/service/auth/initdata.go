package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// webAppDataKey is the fixed HMAC key Telegram uses to derive the
// per-bot signing key from the bot token.
const webAppDataKey = "WebAppData"

// DefaultMaxAge is how old auth_date may be before init data is rejected.
const DefaultMaxAge = time.Hour

// Verify checks a Telegram Mini App init data string signed for botToken
// and returns the user it carries.
//
// The canonical string is every field except hash, sorted by key and
// joined as key=value lines. When a key repeats, its first value is the
// one signed. A payload without auth_date skips the expiry check; a
// payload exactly maxAge old is still accepted.
func Verify(initData string, botToken []byte, maxAge time.Duration, now time.Time) (*Identity, error) {
	// Stricter than lenient query parsers: a raw ';' or bad %xx escape is
	// rejected outright. Telegram percent-encodes both.
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	fields := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}

	hash := fields["hash"]
	delete(fields, "hash")
	if hash == "" {
		return nil, ErrMissingSignature
	}

	if !hmac.Equal([]byte(sign(dataCheckString(fields), botToken)), []byte(hash)) {
		return nil, ErrInvalidSignature
	}

	// TODO(security): confirm whether a missing auth_date should be
	// rejected instead of skipping the expiry check.
	if raw := fields["auth_date"]; raw != "" {
		authDate, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedAuthDate, raw)
		}
		if now.Unix()-authDate > int64(maxAge/time.Second) {
			return nil, ErrExpired
		}
	}

	rawUser, ok := fields["user"]
	if !ok {
		return nil, fmt.Errorf("%w: user field absent", ErrMissingIdentity)
	}
	if unescaped, err := url.PathUnescape(rawUser); err == nil {
		rawUser = unescaped
	}

	return parseIdentity([]byte(rawUser))
}

// Sign returns init data for fields signed with botToken, in the form a
// Telegram client would send it. It exists for tests and local tooling.
func Sign(fields map[string]string, botToken []byte) string {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", sign(dataCheckString(fields), botToken))
	return values.Encode()
}

func dataCheckString(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, k := range keys {
		lines[i] = k + "=" + fields[k]
	}
	return strings.Join(lines, "\n")
}

func sign(dataCheck string, botToken []byte) string {
	secret := hmac.New(sha256.New, []byte(webAppDataKey))
	secret.Write(botToken)

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheck))
	return hex.EncodeToString(mac.Sum(nil))
}
