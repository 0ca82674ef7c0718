// Package validation provides functionality for validating webhook signatures to verify request authenticity.
package validation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"strings"
)

// SignatureHeader carries the base64 encoded HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Line-Signature"

// ChannelSecret represents the shared secret used to sign webhook payloads.
type ChannelSecret string

// NewChannelSecret creates a new ChannelSecret instance from the provided secret string and returns its address.
func NewChannelSecret(secret string) *ChannelSecret {
	s := ChannelSecret(secret)
	return &s
}

// Result is the outcome of a signature check. The diagnostic fields are meant for logs only.
type Result struct {
	Valid      bool
	Received   string
	Computed   string
	BodyDigest string
}

// LogValue implements slog.LogValuer.
func (r Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("valid", r.Valid),
		slog.String("received", r.Received),
		slog.String("computed", r.Computed),
		slog.String("bodySHA256", r.BodyDigest),
	)
}

// Sign returns the base64 encoded HMAC-SHA256 of body.
func (s *ChannelSecret) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(*s))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks signature against the exact bytes of body. It never fails: a missing secret,
// a missing signature or a mismatch all yield an invalid Result.
func (s *ChannelSecret) Verify(body []byte, signature string) Result {
	digest := sha256.Sum256(body)
	res := Result{
		Received:   signature,
		BodyDigest: hex.EncodeToString(digest[:]),
	}
	if s == nil || *s == "" {
		return res
	}
	res.Computed = s.Sign(body)
	if signature == "" {
		return res
	}

	received, err := base64.StdEncoding.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return res
	}
	expected, _ := base64.StdEncoding.DecodeString(res.Computed)
	res.Valid = hmac.Equal(received, expected)
	return res
}
