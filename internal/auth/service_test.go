package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/kprasanna/staff-management/internal"
	userDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/user"
)

type mockUserRepository struct {
	usersByEmail map[string]*userDatamodel.User
	getError     error

	updatedHashUserID string
	updatedHash       string
	updateHashError   error

	lastLoginUserID string
	lastLoginError  error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{usersByEmail: make(map[string]*userDatamodel.User)}
}

func (m *mockUserRepository) GetActiveByEmail(email string) (*userDatamodel.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.usersByEmail[email], nil
}

func (m *mockUserRepository) UpdatePasswordHash(userID, passwordHash string, lastLogin time.Time) error {
	if m.updateHashError != nil {
		return m.updateHashError
	}
	m.updatedHashUserID = userID
	m.updatedHash = passwordHash
	if u := m.findByID(userID); u != nil {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockUserRepository) UpdateLastLogin(userID string, lastLogin time.Time) error {
	if m.lastLoginError != nil {
		return m.lastLoginError
	}
	m.lastLoginUserID = userID
	return nil
}

func (m *mockUserRepository) findByID(userID string) *userDatamodel.User {
	for _, u := range m.usersByEmail {
		if u.ID == userID {
			return u
		}
	}
	return nil
}

var _ = Describe("Service Login", func() {
	var (
		users    *mockUserRepository
		sessions *mockSessionRepository
		service  *Service
		limiter  *RateLimiter
		slept    []time.Duration
	)

	const (
		email    = "manager@example.com"
		password = "Sup3rSecret"
	)

	addUser := func(storedHash string) *userDatamodel.User {
		u := &userDatamodel.User{
			ID:           "user-1",
			Email:        email,
			FullName:     "Branch Manager",
			Role:         RoleManager,
			PasswordHash: storedHash,
			IsActive:     true,
		}
		users.usersByEmail[email] = u
		return u
	}

	bcryptDigest := func(plaintext string) string {
		digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		return string(digest)
	}

	BeforeEach(func() {
		users = newMockUserRepository()
		sessions = newMockSessionRepository()
		limiter = NewRateLimiter(5, 15*time.Minute)
		slept = nil

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(users, NewSessionStore(sessions, 30*24*time.Hour),
			NewHasher(bcrypt.MinCost), limiter, 300*time.Millisecond, lg)
		service.sleep = func(d time.Duration) { slept = append(slept, d) }
	})

	Context("with a valid bcrypt credential", func() {
		BeforeEach(func() {
			addUser(bcryptDigest(password))
		})

		It("issues a session and returns the sanitized user", func() {
			result, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).To(BeNil())
			Expect(IsWellFormedToken(result.SessionToken)).To(BeTrue())
			Expect(result.User.ID).To(Equal("user-1"))
			Expect(result.User.Email).To(Equal(email))

			record := sessions.sessions[result.SessionToken]
			Expect(record).NotTo(BeNil())
			Expect(record.Role).To(Equal(RoleManager))
		})

		It("records the login timestamp without re-hashing", func() {
			_, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).To(BeNil())
			Expect(users.lastLoginUserID).To(Equal("user-1"))
			Expect(users.updatedHash).To(BeEmpty())
		})

		It("normalizes the email before lookup", func() {
			result, appErr := service.Login(LoginDTO{Email: "  Manager@Example.COM ", Password: password})
			Expect(appErr).To(BeNil())
			Expect(result).NotTo(BeNil())
		})

		It("clears the failure count on success", func() {
			for i := 0; i < 4; i++ {
				_, appErr := service.Login(LoginDTO{Email: email, Password: "wrong-pass1"})
				Expect(appErr).NotTo(BeNil())
			}

			_, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).To(BeNil())

			blocked, _ := limiter.Check(email)
			Expect(blocked).To(BeFalse())
		})

		It("still succeeds when the login timestamp write fails", func() {
			users.lastLoginError = errors.New("deadlock")
			result, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).To(BeNil())
			Expect(result).NotTo(BeNil())
		})
	})

	Context("with a legacy credential", func() {
		BeforeEach(func() {
			// Digest of "oldpass123" under the deprecated scheme.
			addUser("9l01wy")
		})

		It("authenticates and upgrades the stored digest to bcrypt", func() {
			result, appErr := service.Login(LoginDTO{Email: email, Password: "oldpass123"})
			Expect(appErr).To(BeNil())
			Expect(result).NotTo(BeNil())

			Expect(users.updatedHashUserID).To(Equal("user-1"))
			Expect(users.updatedHash).To(HavePrefix("$2a$"))
			Expect(bcrypt.CompareHashAndPassword([]byte(users.updatedHash), []byte("oldpass123"))).To(Succeed())
		})

		It("still succeeds when the upgrade cannot be persisted", func() {
			users.updateHashError = errors.New("deadlock")
			result, appErr := service.Login(LoginDTO{Email: email, Password: "oldpass123"})
			Expect(appErr).To(BeNil())
			Expect(result).NotTo(BeNil())
		})

		It("rejects a wrong password against the legacy digest", func() {
			_, appErr := service.Login(LoginDTO{Email: email, Password: "oldpass999"})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("upgrades an account whose password exceeds bcrypt's 72-byte input", func() {
			long := strings.Repeat("a1", 50) // 100 chars
			// Digest of the 100-char password under the deprecated scheme.
			users.usersByEmail[email].PasswordHash = "ltonu6"

			result, appErr := service.Login(LoginDTO{Email: email, Password: long})
			Expect(appErr).To(BeNil())
			Expect(result).NotTo(BeNil())

			Expect(users.updatedHash).To(HavePrefix("$2a$"))
			hasher := NewHasher(bcrypt.MinCost)
			Expect(hasher.Verify(long, users.updatedHash)).To(BeTrue())
		})
	})

	Context("with bad credentials", func() {
		It("returns the generic denial for an unknown email, with delay", func() {
			_, appErr := service.Login(LoginDTO{Email: "nobody@example.com", Password: "whatever1"})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
			Expect(appErr.Message).To(Equal(internal.ErrInvalidCredentials.Message))
			Expect(slept).To(ConsistOf(300 * time.Millisecond))
		})

		It("returns the same denial for a wrong password, without delay", func() {
			addUser(bcryptDigest(password))
			_, appErr := service.Login(LoginDTO{Email: email, Password: "wrong-pass1"})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.Message).To(Equal(internal.ErrInvalidCredentials.Message))
			Expect(slept).To(BeEmpty())
		})

		It("denies when the account has no stored digest", func() {
			u := addUser("")
			u.PasswordHash = ""
			_, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("denies on a lookup failure instead of surfacing the error", func() {
			users.getError = errors.New("connection refused")
			_, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("rate limiting", func() {
		BeforeEach(func() {
			addUser(bcryptDigest(password))
		})

		It("locks the account key after five failures", func() {
			for i := 0; i < 5; i++ {
				_, appErr := service.Login(LoginDTO{Email: email, Password: "wrong-pass1"})
				Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
			}

			_, appErr := service.Login(LoginDTO{Email: email, Password: password})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusTooManyRequests))
			Expect(appErr.RetryAfter).To(BeNumerically(">", 0))
			Expect(appErr.RetryAfter).To(BeNumerically("<=", 900))
		})

		It("counts unknown-email attempts toward the lockout", func() {
			for i := 0; i < 5; i++ {
				_, _ = service.Login(LoginDTO{Email: "nobody@example.com", Password: "whatever1"})
			}
			_, appErr := service.Login(LoginDTO{Email: "nobody@example.com", Password: "whatever1"})
			Expect(appErr.StatusCode).To(Equal(http.StatusTooManyRequests))
		})

		It("does not count malformed requests", func() {
			for i := 0; i < 10; i++ {
				_, appErr := service.Login(LoginDTO{Email: "not-an-email", Password: "whatever1"})
				Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			}
			blocked, _ := limiter.Check("not-an-email")
			Expect(blocked).To(BeFalse())
		})
	})

	Context("input validation", func() {
		It("rejects a malformed email", func() {
			_, appErr := service.Login(LoginDTO{Email: "not-an-email", Password: password})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})

		It("rejects an empty password", func() {
			_, appErr := service.Login(LoginDTO{Email: email, Password: ""})
			Expect(appErr).NotTo(BeNil())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	It("fails when session issuance fails", func() {
		addUser(bcryptDigest(password))
		sessions.insertError = errors.New("disk full")
		_, appErr := service.Login(LoginDTO{Email: email, Password: password})
		Expect(appErr).NotTo(BeNil())
		Expect(appErr.StatusCode).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("Service Logout", func() {
	var (
		sessions *mockSessionRepository
		service  *Service
	)

	BeforeEach(func() {
		sessions = newMockSessionRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = NewService(newMockUserRepository(), NewSessionStore(sessions, time.Hour),
			NewHasher(bcrypt.MinCost), NewRateLimiter(5, 15*time.Minute), 0, lg)
	})

	It("invalidates the presented session", func() {
		store := NewSessionStore(sessions, time.Hour)
		token, err := store.Create("user-1", RoleManager)
		Expect(err).NotTo(HaveOccurred())

		Expect(service.Logout(token)).To(BeNil())
		Expect(sessions.sessions[token].IsValid).To(BeFalse())
	})

	It("rejects a malformed token", func() {
		appErr := service.Logout("junk")
		Expect(appErr).NotTo(BeNil())
		Expect(appErr.StatusCode).To(Equal(http.StatusUnauthorized))
	})
})
