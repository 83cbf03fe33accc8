// Package middle contains middleware for use with the scopecmd server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/tracon/scopecmd/server/dao"
	"github.com/tracon/scopecmd/server/result"
	"github.com/tracon/scopecmd/server/token"
)

// Middleware is a function that takes a handler and returns a new handler which
// wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthSession AuthKey = iota
)

// AuthHandler is middleware that will accept a request, extract the token used
// for authentication, and look up the session the token was issued for.
//
// The session is added to the request context under AuthSession before the
// request is passed to the next step in the chain. A request without a valid
// token gets an HTTP-401 and is not passed on.
type AuthHandler struct {
	db            dao.SessionRepository
	secret        []byte
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	tok, err := token.Get(req)
	if err != nil {
		r := result.Unauthorized("", err.Error())
		time.Sleep(ah.unauthedDelay)
		r.WriteResponse(w)
		return
	}

	sesh, err := token.Validate(req.Context(), tok, ah.secret, ah.db)
	if err != nil {
		r := result.Unauthorized("", err.Error())
		time.Sleep(ah.unauthedDelay)
		r.WriteResponse(w)
		return
	}

	ctx := context.WithValue(req.Context(), AuthSession, sesh)
	ah.next.ServeHTTP(w, req.WithContext(ctx))
}

// RequireAuth returns Middleware that only lets through requests bearing a
// token for an existing session.
func RequireAuth(db dao.SessionRepository, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			next:          next,
		}
	}
}
