package identifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducesValidInternalIDs(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := New()
		require.NoError(t, err)
		assert.True(t, Valid(id), "minted id %q must be 24 hex chars", id)
		assert.False(t, seen[id], "minted id %q repeated", id)
		seen[id] = true
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("64a1f0b2c3d4e5f601234567"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("64a1f0b2c3d4e5f60123456"))   // 23 chars
	assert.False(t, Valid("64a1f0b2c3d4e5f6012345678")) // 25 chars
	assert.False(t, Valid("64A1F0B2C3D4E5F601234567"))  // uppercase
	assert.False(t, Valid("zza1f0b2c3d4e5f601234567"))  // non-hex
}

func TestPublicIsDeterministic(t *testing.T) {
	id := "64a1f0b2c3d4e5f601234567"
	first := Public(KindProduct, id)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Public(KindProduct, id))
	}
}

func TestPublicFormat(t *testing.T) {
	wire := regexp.MustCompile(`^(usr|cus|prod|cat|ord|id)_[0-9a-f]{16}$`)
	cases := map[Kind]string{
		KindUser:     "usr",
		KindCustomer: "cus",
		KindProduct:  "prod",
		KindCategory: "cat",
		KindOrder:    "ord",
		Kind("misc"): "id",
	}
	for kind, prefix := range cases {
		pub := Public(kind, "64a1f0b2c3d4e5f601234567")
		assert.Regexp(t, wire, pub)
		p, hash, ok := ParsePublic(pub)
		require.True(t, ok)
		assert.Equal(t, prefix, p)
		assert.Len(t, hash, 16)
	}
}

func TestPublicDistinctInputsDistinctOutputs(t *testing.T) {
	a := Public(KindOrder, "64a1f0b2c3d4e5f601234567")
	b := Public(KindOrder, "64a1f0b2c3d4e5f601234568")
	assert.NotEqual(t, a, b)
	// Same id under a different prefix still hashes to the same tail.
	c := Public(KindUser, "64a1f0b2c3d4e5f601234567")
	_, hashA, _ := ParsePublic(a)
	_, hashC, _ := ParsePublic(c)
	assert.Equal(t, hashA, hashC)
}

func TestPublicDoesNotEmbedInternalID(t *testing.T) {
	id := "64a1f0b2c3d4e5f601234567"
	assert.NotContains(t, Public(KindCustomer, id), id)
}

func TestParsePublicRejectsMalformed(t *testing.T) {
	for _, s := range []string{
		"",
		"prod_",
		"prod_12345",
		"prod_123456789abcdef",   // 15 hex chars
		"prod_123456789abcdef01", // 17 hex chars
		"xyz_1234567890abcdef",   // unknown prefix
		"PROD_1234567890abcdef",  // uppercase prefix
		"prod-1234567890abcdef",  // wrong separator
	} {
		_, _, ok := ParsePublic(s)
		assert.False(t, ok, "expected %q to be rejected", s)
		assert.False(t, ValidPublic(s))
	}
}
