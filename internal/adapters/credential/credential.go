// Package credential keeps the optional GitHub token sealed in encrypted memory.
package credential

import (
	"strings"

	"github.com/awnumar/memguard"
	"github.com/gmackall/flutter-fix-status/internal/core/domain"
	"go.trai.ch/zerr"
)

// Token is an optional bearer credential. The zero value and nil hold no token.
type Token struct {
	enclave *memguard.Enclave
}

// New seals token. A blank token yields a Token that reports !Present.
func New(token string) *Token {
	token = strings.TrimSpace(token)
	if token == "" {
		return &Token{}
	}
	return &Token{enclave: memguard.NewEnclave([]byte(token))}
}

// Present reports whether a token was supplied.
func (t *Token) Present() bool {
	return t != nil && t.enclave != nil
}

// Use opens the token for the duration of fn.
func (t *Token) Use(fn func(secret string)) error {
	if !t.Present() {
		return nil
	}

	buf, err := t.enclave.Open()
	if err != nil {
		return zerr.Wrap(domain.ErrCredentialUnavailable, err.Error())
	}
	defer buf.Destroy()

	fn(string(buf.Bytes()))
	return nil
}

// Purge wipes every sealed secret held by the process.
func Purge() {
	memguard.Purge()
}
