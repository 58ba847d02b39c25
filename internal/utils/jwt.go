package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "fmt"
    "strconv"
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp.  Access tokens are the only credential the API issues:
// there is no refresh token and no revocation, a token stays valid until
// Exp.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Claims is the decoded content of a valid access token.
type Claims struct {
    UserID uint64
    Role   string
    Email  string
}

// ErrInvalidToken is returned for malformed, badly signed or expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewAccessToken builds and signs an HS256 JWT for a user.  The JWT
// includes subject (sub), role, email, expiration (exp) and issued at
// (iat).  now is passed in so callers control the clock.
func NewAccessToken(secret string, userID uint64, role, email string, ttl time.Duration, now time.Time) (AccessToken, error) {
    now = now.UTC()
    exp := now.Add(ttl)
    // sub is a string per RFC 7519.
    claims := jwt.MapClaims{
        "sub":   strconv.FormatUint(userID, 10),
        "role":  role,
        "email": email,
        "exp":   exp.Unix(),
        "iat":   now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of raw and returns
// its claims.  Only HS256 is accepted.
func ParseAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return Claims{}, ErrInvalidToken
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrInvalidToken
    }
    sub, err := mc.GetSubject()
    if err != nil {
        return Claims{}, ErrInvalidToken
    }
    id, err := strconv.ParseUint(sub, 10, 64)
    if err != nil || id == 0 {
        return Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
    }
    role, _ := mc["role"].(string)
    if role == "" {
        return Claims{}, fmt.Errorf("%w: missing role", ErrInvalidToken)
    }
    email, _ := mc["email"].(string)
    return Claims{UserID: id, Role: role, Email: email}, nil
}
