package auth_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/kprasanna/staff-management/internal/auth"
)

var _ = Describe("Hasher", func() {
	var hasher *auth.Hasher

	BeforeEach(func() {
		// MinCost keeps the suite fast; production cost comes from config.
		hasher = auth.NewHasher(bcrypt.MinCost)
	})

	Describe("Hash and Verify", func() {
		It("verifies a password against its own digest", func() {
			digest, err := hasher.Hash("Sup3rSecret")
			Expect(err).NotTo(HaveOccurred())
			Expect(digest).To(HavePrefix("$2a$"))

			Expect(hasher.Verify("Sup3rSecret", digest)).To(BeTrue())
		})

		It("rejects a wrong password", func() {
			digest, err := hasher.Hash("Sup3rSecret")
			Expect(err).NotTo(HaveOccurred())

			Expect(hasher.Verify("wrong-password", digest)).To(BeFalse())
		})

		It("round-trips passwords longer than bcrypt's 72-byte input", func() {
			long := strings.Repeat("a1", 50) // 100 chars, within the 128 limit
			digest, err := hasher.Hash(long)
			Expect(err).NotTo(HaveOccurred())
			Expect(digest).To(HavePrefix("$2a$"))

			Expect(hasher.Verify(long, digest)).To(BeTrue())
		})

		It("round-trips a password at the 128-character limit", func() {
			max := strings.Repeat("Pw9", 42) + "x9" // 128 chars
			Expect(max).To(HaveLen(128))

			digest, err := hasher.Hash(max)
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.Verify(max, digest)).To(BeTrue())
		})

		It("compares only the first 72 bytes of long passwords", func() {
			// bcrypt ignores input past 72 bytes, so two passwords sharing
			// that prefix verify against the same digest.
			prefix := strings.Repeat("b2", 36) // exactly 72 bytes
			digest, err := hasher.Hash(prefix + "tail1")
			Expect(err).NotTo(HaveOccurred())

			Expect(hasher.Verify(prefix+"tail2", digest)).To(BeTrue())
			Expect(hasher.Verify(prefix[:70]+"xx"+"tail1", digest)).To(BeFalse())
		})

		It("produces distinct digests for the same password", func() {
			first, err := hasher.Hash("Sup3rSecret")
			Expect(err).NotTo(HaveOccurred())
			second, err := hasher.Hash("Sup3rSecret")
			Expect(err).NotTo(HaveOccurred())

			Expect(first).NotTo(Equal(second))
		})
	})

	Describe("legacy digests", func() {
		// Digests minted by the deprecated pre-bcrypt hash, captured from
		// accounts created before the rollout.
		It("verifies a stored legacy digest", func() {
			Expect(hasher.Verify("oldpass123", "9l01wy")).To(BeTrue())
			Expect(hasher.Verify("LegacyPass1", "8ng8qs")).To(BeTrue())
			Expect(hasher.Verify("hunter2", "kxnpeb")).To(BeTrue())
		})

		It("rejects a wrong password against a legacy digest", func() {
			Expect(hasher.Verify("oldpass124", "9l01wy")).To(BeFalse())
			Expect(hasher.Verify("", "9l01wy")).To(BeFalse())
		})
	})

	Describe("NeedsUpgrade", func() {
		It("flags legacy digests for re-hash", func() {
			Expect(hasher.NeedsUpgrade("9l01wy")).To(BeTrue())
		})

		It("does not flag bcrypt digests", func() {
			digest, err := hasher.Hash("Sup3rSecret")
			Expect(err).NotTo(HaveOccurred())
			Expect(hasher.NeedsUpgrade(digest)).To(BeFalse())
		})
	})
})

var _ = Describe("ParseDigest", func() {
	It("classifies modular-crypt prefixes as bcrypt", func() {
		for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
			d := auth.ParseDigest(prefix + "10$abcdefghijklmnopqrstuv")
			Expect(d.Scheme).To(Equal(auth.SchemeBcrypt))
		}
	})

	It("classifies everything else as legacy", func() {
		Expect(auth.ParseDigest("9l01wy").Scheme).To(Equal(auth.SchemeLegacy))
		Expect(auth.ParseDigest("").Scheme).To(Equal(auth.SchemeLegacy))
		Expect(auth.ParseDigest("$1$md5crypt").Scheme).To(Equal(auth.SchemeLegacy))
	})
})
