// Package identifier mints internal document identifiers and derives the
// public identifiers exposed over the API.  Internal ids are 24-character
// lowercase hex strings and never leave the service; clients only ever see
// a public id of the form "<prefix>_<16 hex chars>", derived one-way from
// the internal id with SHA-256.  The derivation is deterministic, so the
// same record always presents the same public id, but it cannot be
// reversed without rehashing candidates.  Each table therefore stores the
// public id in an indexed column at insert time instead of scanning.
package identifier

import (
    "crypto/rand"   // secure random bytes for new internal ids
    "crypto/sha256" // one-way digest for public id derivation
    "encoding/hex"  // hex encoding of ids and digests
    "regexp"        // format validation at the HTTP boundary
    "strings"       // prefix splitting in ParsePublic
)

// Kind names a resource type and selects the public-id prefix.
type Kind string

const (
    KindUser     Kind = "user"
    KindCustomer Kind = "customer"
    KindProduct  Kind = "product"
    KindCategory Kind = "category"
    KindOrder    Kind = "order"
)

// prefixes maps a resource kind to its wire-visible prefix.  Unknown kinds
// fall back to the generic "id" prefix.
var prefixes = map[Kind]string{
    KindUser:     "usr",
    KindCustomer: "cus",
    KindProduct:  "prod",
    KindCategory: "cat",
    KindOrder:    "ord",
}

var (
    internalRe = regexp.MustCompile(`^[0-9a-f]{24}$`)
    publicRe   = regexp.MustCompile(`^(usr|cus|prod|cat|ord|id)_[0-9a-f]{16}$`)
)

// New mints a fresh internal id: 12 bytes of secure random data encoded as
// 24 hex characters.  The only failure mode is the system RNG failing.
func New() (string, error) {
    buf := make([]byte, 12)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

// Valid reports whether s is a well-formed internal id (24 lowercase hex
// characters).  Malformed ids must be rejected before hashing.
func Valid(s string) bool {
    return internalRe.MatchString(s)
}

// Public derives the external identifier for an internal id: the kind's
// prefix, an underscore, and the first 16 hex characters of the SHA-256
// digest of the internal id.  Pure and total over string inputs.
func Public(kind Kind, internalID string) string {
    p, ok := prefixes[kind]
    if !ok {
        p = "id"
    }
    sum := sha256.Sum256([]byte(internalID))
    return p + "_" + hex.EncodeToString(sum[:])[:16]
}

// ValidPublic reports whether s matches the published public-id format.
func ValidPublic(s string) bool {
    return publicRe.MatchString(s)
}

// ParsePublic splits a public id into its prefix and hash portion.  The
// second return is false when s does not match the public-id format.
func ParsePublic(s string) (prefix, hash string, ok bool) {
    if !publicRe.MatchString(s) {
        return "", "", false
    }
    i := strings.IndexByte(s, '_')
    return s[:i], s[i+1:], true
}
