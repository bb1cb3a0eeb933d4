// Package auth issues and validates the credentials used by the API:
// HS256 access tokens, opaque refresh tokens and bcrypt password hashes.
// Only hashes of refresh tokens are ever persisted, and access tokens are
// revoked before natural expiry by blacklisting their SHA-256 digest.
package auth

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA-256 hashing for refresh tokens and the blacklist
    "encoding/hex"  // hex encoding of digests
    "errors"        // sentinel error classification
    "time"          // expiry computation

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Validation errors returned by ParseAccessToken.  Expiry is deliberately a
// distinct class from structural failure so callers can report it as such.
var (
    ErrTokenInvalid = errors.New("access token invalid")
    ErrTokenExpired = errors.New("access token expired")
)

// AccessToken is a signed JWT access token along with its expiry.  Access
// tokens are short-lived and sent in the Authorization header when calling
// protected endpoints.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// RefreshToken is a long-lived token used to obtain new access tokens.  Raw
// is returned to the client; the database only ever stores its SHA-256 hash.
type RefreshToken struct {
    Raw string    // raw token string returned to the client
    Exp time.Time // UTC expiration time
}

// Claims are the verified contents of an access token.
type Claims struct {
    UserID    string    // internal user id (sub)
    Role      string    // ADMIN or CUSTOMER
    ExpiresAt time.Time // exp claim
}

// NewAccessToken builds and signs an HS256 JWT bound to a user id and role.
// The JWT carries the standard claims sub, role, exp and iat.  The subject
// is the internal document id; it is never exposed in API responses, only
// inside the signed token.
func NewAccessToken(secret, userID, role string, ttlMin int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": role,
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a serialized access
// token and returns its claims.  It returns ErrTokenExpired when the token
// is well-formed and correctly signed but past its exp claim, and
// ErrTokenInvalid for every other failure (bad signature, wrong algorithm,
// malformed structure, missing claims).
func ParseAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenInvalid
        }
        return []byte(secret), nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return Claims{}, ErrTokenExpired
        }
        return Claims{}, ErrTokenInvalid
    }
    if !tok.Valid {
        return Claims{}, ErrTokenInvalid
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrTokenInvalid
    }
    sub, _ := mc["sub"].(string)
    role, _ := mc["role"].(string)
    if sub == "" || role == "" {
        return Claims{}, ErrTokenInvalid
    }
    var exp time.Time
    if v, err := mc.GetExpirationTime(); err == nil && v != nil {
        exp = v.Time
    }
    return Claims{UserID: sub, Role: role, ExpiresAt: exp}, nil
}

// NewRefreshToken returns a cryptographically secure random token and its
// expiration time.  The ttlDays parameter controls how many days the
// refresh token stays valid.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
    raw, err := randomHex(48) // 48 bytes -> 96 hex chars
    if err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
    }, nil
}

// HashToken returns the SHA-256 digest of a token as a hex string.  Used
// both for refresh tokens at rest and as the blacklist key for revoked
// access tokens, so a stolen database or cache never yields usable
// credentials.
func HashToken(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
