// Package token issues and checks the JWTs that authorize requests against a
// single sim session. A token's subject is the ID of the session it grants
// access to.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tracon/scopecmd/server/dao"
)

const (
	Issuer = "scopecmd"

	// Lifetime is how long a token stays valid after it is generated.
	Lifetime = 12 * time.Hour
)

// Get extracts the bearer token from the Authorization header of req.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))

	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	token := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return token, nil
}

// Generate creates a signed token for s. The session's creation time is mixed
// into the signing key, so a session deleted and re-created under the same ID
// does not accept the old session's tokens.
func Generate(secret []byte, s dao.Session) (string, error) {
	claims := &jwt.MapClaims{
		"iss": Issuer,
		"exp": time.Now().Add(Lifetime).Unix(),
		"sub": s.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(signKey(secret, s))
	if err != nil {
		return "", err
	}
	return tokStr, nil
}

// Validate parses tok and checks its signature against the session it names,
// which is looked up in db. The session is returned if the token is good.
func Validate(ctx context.Context, tok string, secret []byte, db dao.SessionRepository) (dao.Session, error) {
	var sesh dao.Session

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		sesh, err = db.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, dao.ErrNotFound) {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		return signKey(secret, sesh), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(Issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return dao.Session{}, err
	}

	return sesh, nil
}

func signKey(secret []byte, s dao.Session) []byte {
	var key []byte
	key = append(key, secret...)
	key = append(key, []byte(fmt.Sprintf("%d", s.Created.Unix()))...)
	return key
}
