package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sparkdate/spark-backend/internal/httperr"
)

const ctxUserIDKey = "auth_user_id"

// Auth validates the Authorization bearer token and attaches the caller's
// user id to the request context. The identity provider signs tokens with an
// HMAC secret and puts the user id in the `sub` claim.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httperr.Abort(c, httperr.Unauthorized("missing bearer token"))
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Abort(c, httperr.Unauthorized("invalid token"))
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			httperr.Abort(c, httperr.Unauthorized("invalid token"))
			return
		}
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			httperr.Abort(c, httperr.Unauthorized("invalid token subject"))
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated caller's user id.
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// SignUserToken issues an HMAC token for the given user. Used by the seeder
// and by tests; production tokens come from the identity provider.
func SignUserToken(secret string, userID uint64, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
