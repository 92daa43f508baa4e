// internal/httpserver/snapshot.go
//
// Signed snapshot tokens and the snapshot cookie.
// A token is an HS256 JWT whose jti is the snapshot ID in the store and whose
// idx claim repeats the saved index, so a resume still works when the store
// has lost the row (memory backend after a restart).

package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const snapshotCookieName = "geoquiz_snapshot"

var errBadToken = errors.New("invalid snapshot token")

// snapshotClaims carries the persisted index alongside the registered claims.
type snapshotClaims struct {
	Index int `json:"idx"`
	jwt.RegisteredClaims
}

// signSnapshot creates a token for snapshot id holding idx.
func (s *Server) signSnapshot(id string, idx int) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.SnapshotTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, snapshotClaims{
		Index: idx,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	ss, err := t.SignedString(s.opts.Secret)
	return ss, exp, err
}

// parseSnapshot verifies tok and returns its claims.
func (s *Server) parseSnapshot(tok string) (*snapshotClaims, error) {
	claims := &snapshotClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.opts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadToken, err)
	}
	if !t.Valid || claims.ID == "" || claims.Index < 0 {
		return nil, errBadToken
	}
	return claims, nil
}

// setSnapshotCookie writes the snapshot token cookie.
func (s *Server) setSnapshotCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.SecureCookies {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     snapshotCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a token from the Authorization header or the snapshot cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(snapshotCookieName); err == nil {
		return c.Value
	}
	return ""
}
