package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SecretMatcher decide como o segredo é gravado e comparado.
type SecretMatcher interface {
	Hash(secret string) (string, error)
	Match(stored, secret string) bool
}

// PlaintextMatcher grava o segredo como veio e compara por igualdade.
// É o comportamento legado; use SECRET_MODE=bcrypt para hash.
type PlaintextMatcher struct{}

func (PlaintextMatcher) Hash(secret string) (string, error) {
	return secret, nil
}

func (PlaintextMatcher) Match(stored, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(secret)) == 1
}

type BcryptMatcher struct {
	Cost int
}

func (m BcryptMatcher) Hash(secret string) (string, error) {
	cost := m.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hashed), nil
}

func (BcryptMatcher) Match(stored, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(secret)) == nil
}

// NewSecretMatcher: "bcrypt" ou qualquer outro valor = texto puro.
func NewSecretMatcher(mode string) SecretMatcher {
	if mode == "bcrypt" {
		return BcryptMatcher{}
	}
	return PlaintextMatcher{}
}
