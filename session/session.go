package session

import (
	"context"
	"time"

	"github.com/fundwit/go-commons/types"
)

type Identity struct {
	ID    types.ID `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
}

// Session is the caller resolved by the access gate for one request.
type Session struct {
	Context context.Context `json:"-"`

	Token    string   `json:"-"`
	TokenID  string   `json:"-"`
	Identity Identity `json:"identity"`

	SigningTime time.Time `json:"signingTime"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Session) Clone() Session {
	return Session{
		Context:     s.Context,
		Token:       s.Token,
		TokenID:     s.TokenID,
		Identity:    s.Identity,
		SigningTime: s.SigningTime,
		ExpiresAt:   s.ExpiresAt,
	}
}
