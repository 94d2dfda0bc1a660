package auth

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	sessionDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/session"
)

type mockSessionRepository struct {
	sessions    map[string]*sessionDatamodel.Session
	insertError error
	getError    error
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*sessionDatamodel.Session)}
}

func (m *mockSessionRepository) Insert(s *sessionDatamodel.Session) error {
	if m.insertError != nil {
		return m.insertError
	}
	copied := *s
	m.sessions[s.Token] = &copied
	return nil
}

func (m *mockSessionRepository) GetByToken(token string) (*sessionDatamodel.Session, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	s, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (m *mockSessionRepository) Invalidate(token string) error {
	if s, ok := m.sessions[token]; ok {
		s.IsValid = false
	}
	return nil
}

func (m *mockSessionRepository) InvalidateAllExcept(userID, keepToken string) error {
	for token, s := range m.sessions {
		if s.UserID == userID && token != keepToken {
			s.IsValid = false
		}
	}
	return nil
}

var _ = Describe("SessionStore", func() {
	var (
		repo  *mockSessionRepository
		store *SessionStore
		clock time.Time
	)

	BeforeEach(func() {
		repo = newMockSessionRepository()
		store = NewSessionStore(repo, 30*24*time.Hour)
		clock = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return clock }
	})

	Describe("Create", func() {
		It("issues a 64-hex token and persists the role snapshot", func() {
			token, err := store.Create("user-1", RoleManager)
			Expect(err).NotTo(HaveOccurred())
			Expect(IsWellFormedToken(token)).To(BeTrue())

			record := repo.sessions[token]
			Expect(record).NotTo(BeNil())
			Expect(record.UserID).To(Equal("user-1"))
			Expect(record.Role).To(Equal(RoleManager))
			Expect(record.IsValid).To(BeTrue())
			Expect(record.ExpiresAt).To(Equal(clock.Add(30 * 24 * time.Hour)))
		})

		It("issues a different token every time", func() {
			first, err := store.Create("user-1", RoleManager)
			Expect(err).NotTo(HaveOccurred())
			second, err := store.Create("user-1", RoleManager)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).NotTo(Equal(second))
		})

		It("fails when the session cannot be persisted", func() {
			repo.insertError = errors.New("disk full")
			_, err := store.Create("user-1", RoleManager)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Validate", func() {
		var token string

		BeforeEach(func() {
			var err error
			token, err = store.Create("user-1", RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accepts a live session and returns the snapshot", func() {
			check := store.Validate(token)
			Expect(check.Valid).To(BeTrue())
			Expect(check.UserID).To(Equal("user-1"))
			Expect(check.Role).To(Equal(RoleAdmin))
		})

		It("rejects a malformed token without touching storage", func() {
			repo.getError = errors.New("should not be reached")
			for _, bad := range []string{"", "short", token + "ff", token[:63] + "G"} {
				check := store.Validate(bad)
				Expect(check.Valid).To(BeFalse())
			}
		})

		It("rejects an unknown token", func() {
			unknown := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
			Expect(store.Validate(unknown).Valid).To(BeFalse())
		})

		It("rejects an invalidated session", func() {
			Expect(store.Invalidate(token)).To(Succeed())
			Expect(store.Validate(token).Valid).To(BeFalse())
		})

		It("rejects a session at its exact expiry instant", func() {
			clock = clock.Add(30 * 24 * time.Hour)
			check := store.Validate(token)
			Expect(check.Valid).To(BeFalse())
			Expect(check.Reason).To(Equal("session expired"))
		})

		It("fails closed on a datastore error", func() {
			repo.getError = errors.New("connection reset")
			Expect(store.Validate(token).Valid).To(BeFalse())
		})
	})

	Describe("InvalidateAllExcept", func() {
		It("revokes sibling sessions but keeps the given one", func() {
			keep, err := store.Create("user-1", RoleManager)
			Expect(err).NotTo(HaveOccurred())
			other, err := store.Create("user-1", RoleManager)
			Expect(err).NotTo(HaveOccurred())
			unrelated, err := store.Create("user-2", RoleManager)
			Expect(err).NotTo(HaveOccurred())

			Expect(store.InvalidateAllExcept("user-1", keep)).To(Succeed())

			Expect(store.Validate(keep).Valid).To(BeTrue())
			Expect(store.Validate(other).Valid).To(BeFalse())
			Expect(store.Validate(unrelated).Valid).To(BeTrue())
		})
	})
})

var _ = Describe("IsWellFormedToken", func() {
	It("accepts exactly 64 lowercase hex characters", func() {
		Expect(IsWellFormedToken("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")).To(BeTrue())
	})

	It("rejects wrong lengths, uppercase, and non-hex input", func() {
		Expect(IsWellFormedToken("")).To(BeFalse())
		Expect(IsWellFormedToken("abc")).To(BeFalse())
		Expect(IsWellFormedToken("0123456789ABCDEF0123456789abcdef0123456789abcdef0123456789abcdef")).To(BeFalse())
		Expect(IsWellFormedToken("0123456789abcdeg0123456789abcdef0123456789abcdef0123456789abcdef")).To(BeFalse())
	})
})
