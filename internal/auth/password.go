package auth

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

// HashScheme discriminates how a stored digest was produced.
type HashScheme string

const (
	// SchemeBcrypt is the adaptive scheme; all new digests use it.
	SchemeBcrypt HashScheme = "bcrypt"
	// SchemeLegacy is the deprecated fast hash kept only so that accounts
	// created before the bcrypt rollout can still sign in once. Every
	// successful legacy verification triggers a re-hash, so the scheme
	// removes itself from the user table over time.
	SchemeLegacy HashScheme = "legacy"
)

// Digest is a stored password hash resolved to its scheme, so call sites
// dispatch on a tagged value instead of sniffing prefixes everywhere.
type Digest struct {
	Scheme HashScheme
	Value  string
}

// ParseDigest classifies a stored hash string. Bcrypt digests are
// self-describing via their modular-crypt prefix; anything else is a
// legacy digest.
func ParseDigest(stored string) Digest {
	if strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$") {
		return Digest{Scheme: SchemeBcrypt, Value: stored}
	}
	return Digest{Scheme: SchemeLegacy, Value: stored}
}

// Hasher produces bcrypt digests and verifies against both schemes.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// bcryptMaxInput is bcrypt's 72-byte input limit. Plaintexts beyond it are
// truncated rather than rejected: passwords up to 128 characters are valid,
// and historical digests were minted by an implementation that truncated
// silently, so hashing and verification must agree on the same prefix.
const bcryptMaxInput = 72

func bcryptInput(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > bcryptMaxInput {
		b = b[:bcryptMaxInput]
	}
	return b
}

// Hash produces a bcrypt digest of the plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(bcryptInput(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the stored digest,
// dispatching on the digest's scheme.
func (h *Hasher) Verify(plaintext, stored string) bool {
	d := ParseDigest(stored)
	switch d.Scheme {
	case SchemeBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(d.Value), bcryptInput(plaintext)) == nil
	default:
		return legacyHash(plaintext) == d.Value
	}
}

// NeedsUpgrade reports whether the stored digest should be replaced with
// a bcrypt one on the next successful verification.
func (h *Hasher) NeedsUpgrade(stored string) bool {
	return ParseDigest(stored).Scheme != SchemeBcrypt
}

// legacyHash is the deprecated pre-bcrypt password hash: a 31x rolling
// hash over UTF-16 code units with 32-bit wraparound, folded with a
// length-derived salt and rendered in base 36. Not cryptographic; it
// exists solely to verify digests minted before the bcrypt rollout.
func legacyHash(s string) string {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h<<5 - h + int32(unit)
	}
	salt := int64(len(utf16.Encode([]rune(s))))*17 + 42
	v := int64(h) + salt
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
