// Package kiosk issues and checks the rotating code shown on the shop's
// attendance kiosk. A badge scan must carry the current code so a
// photographed badge alone cannot mark attendance from outside the shop.
package kiosk

import (
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// Period is how long one code stays on screen.
const Period = 30 * time.Second

var opts = totp.ValidateOpts{
	Period:    uint(Period / time.Second),
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type Verifier struct {
	secret string
}

// NewVerifier returns nil when secret is empty, which disables code checks.
func NewVerifier(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, nil
	}
	// Reject malformed base32 secrets at startup instead of on every scan.
	if _, err := totp.GenerateCodeCustom(secret, time.Now(), opts); err != nil {
		return nil, fmt.Errorf("invalid kiosk secret: %w", err)
	}
	return &Verifier{secret: secret}, nil
}

// Code returns the code valid at t and the instant it rotates.
func (v *Verifier) Code(t time.Time) (string, time.Time, error) {
	code, err := totp.GenerateCodeCustom(v.secret, t, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate kiosk code: %w", err)
	}
	step := t.Unix() / int64(opts.Period)
	expiresAt := time.Unix((step+1)*int64(opts.Period), 0).In(t.Location())
	return code, expiresAt, nil
}

// Check accepts the code for t and one period either side.
func (v *Verifier) Check(code string, t time.Time) bool {
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), v.secret, t, opts)
	return err == nil && ok
}
