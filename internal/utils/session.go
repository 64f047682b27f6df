package utils // package utils provides helpers for session tokens, hashing and identity normalization

import (
	"crypto/rand"     // secure random nonce generation
	"encoding/base64" // base64url segments of the token
	"encoding/hex"    // hex encoding of the nonce
	"encoding/json"   // payload serialization
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5" // HS256 signing method used as the HMAC primitive
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "cm_session"

// SessionTTL is the fixed lifetime of a session token, measured from its
// issue time.
const SessionTTL = 7 * 24 * time.Hour

// ErrMissingSessionSecret is returned when no signing secret is configured.
// Callers treat it as a fatal startup condition.
var ErrMissingSessionSecret = errors.New("session secret is required")

// SessionPayload is the signed part of a session token.  IssuedAt is
// expressed in Unix milliseconds.
type SessionPayload struct {
	Email    string `json:"email"`
	Nonce    string `json:"nonce"`
	IssuedAt int64  `json:"issuedAt"`
}

// ExpiresAt returns the instant after which the payload is no longer
// accepted.
func (p SessionPayload) ExpiresAt(ttl time.Duration) time.Time {
	return time.UnixMilli(p.IssuedAt).Add(ttl).UTC()
}

// SessionCodec creates and verifies stateless session tokens of the form
// base64url(payload) + "." + base64url(HMAC-SHA256(payload)).
//
// Tokens are not stored server side.  There is no revocation list: logging
// out only clears the client cookie, and a copied token stays valid until
// its TTL elapses.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionOption customizes a SessionCodec.
type SessionOption func(*SessionCodec)

// WithClock replaces the codec's time source.
func WithClock(now func() time.Time) SessionOption {
	return func(c *SessionCodec) { c.now = now }
}

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) SessionOption {
	return func(c *SessionCodec) { c.ttl = ttl }
}

// NewSessionCodec builds a codec that signs with secret.  An empty secret
// yields ErrMissingSessionSecret.
func NewSessionCodec(secret string, opts ...SessionOption) (*SessionCodec, error) {
	if secret == "" {
		return nil, ErrMissingSessionSecret
	}
	c := &SessionCodec{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL reports the token lifetime used by the codec.
func (c *SessionCodec) TTL() time.Duration { return c.ttl }

// Create mints a token for the normalized form of email.
func (c *SessionCodec) Create(email string) (string, SessionPayload, error) {
	nonce, err := randomHex(16)
	if err != nil {
		return "", SessionPayload{}, err
	}
	payload := SessionPayload{
		Email:    NormalizeEmail(email),
		Nonce:    nonce,
		IssuedAt: c.now().UnixMilli(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", SessionPayload{}, err
	}
	sig, err := jwt.SigningMethodHS256.Sign(string(raw), c.secret)
	if err != nil {
		return "", SessionPayload{}, err
	}
	token := base64.RawURLEncoding.EncodeToString(raw) + "." + base64.RawURLEncoding.EncodeToString(sig)
	return token, payload, nil
}

// Read verifies token and returns its payload.  The boolean is false for
// malformed, tampered or expired tokens and for payloads without an email.
func (c *SessionCodec) Read(token string) (SessionPayload, bool) {
	encPayload, encSig, ok := strings.Cut(token, ".")
	if !ok || encPayload == "" || encSig == "" {
		return SessionPayload{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(encPayload)
	if err != nil {
		return SessionPayload{}, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(encSig)
	if err != nil {
		return SessionPayload{}, false
	}
	var payload SessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return SessionPayload{}, false
	}
	// Verify compares the MACs with hmac.Equal.
	if err := jwt.SigningMethodHS256.Verify(string(raw), sig, c.secret); err != nil {
		return SessionPayload{}, false
	}
	if c.now().UnixMilli()-payload.IssuedAt > c.ttl.Milliseconds() {
		return SessionPayload{}, false
	}
	if payload.Email == "" {
		return SessionPayload{}, false
	}
	return payload, true
}

// randomHex returns a hex string built from n bytes of secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
