package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kprasanna/staff-management/internal"
	"github.com/kprasanna/staff-management/internal/auth"
	sessionDatamodel "github.com/kprasanna/staff-management/internal/core/datamodel/session"
	"github.com/kprasanna/staff-management/internal/transport"
)

type fakeSessionRepo struct {
	sessions map[string]*sessionDatamodel.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*sessionDatamodel.Session)}
}

func (f *fakeSessionRepo) Insert(s *sessionDatamodel.Session) error {
	copied := *s
	f.sessions[s.Token] = &copied
	return nil
}

func (f *fakeSessionRepo) GetByToken(token string) (*sessionDatamodel.Session, error) {
	return f.sessions[token], nil
}

func (f *fakeSessionRepo) Invalidate(token string) error {
	if s, ok := f.sessions[token]; ok {
		s.IsValid = false
	}
	return nil
}

func (f *fakeSessionRepo) InvalidateAllExcept(userID, keepToken string) error {
	for token, s := range f.sessions {
		if s.UserID == userID && token != keepToken {
			s.IsValid = false
		}
	}
	return nil
}

type mockAuthService struct {
	loginResult *auth.LoginResult
	loginError  *internal.AppError
	logoutError *internal.AppError
	logoutToken string
}

func (m *mockAuthService) Login(dto auth.LoginDTO) (*auth.LoginResult, *internal.AppError) {
	if m.loginError != nil {
		return nil, m.loginError
	}
	return m.loginResult, nil
}

func (m *mockAuthService) Logout(token string) *internal.AppError {
	m.logoutToken = token
	return m.logoutError
}

var _ = Describe("Auth Handler", func() {
	var (
		service *mockAuthService
		repo    *fakeSessionRepo
		store   *auth.SessionStore
		handler *auth.Handler
	)

	BeforeEach(func() {
		service = &mockAuthService{}
		repo = newFakeSessionRepo()
		store = auth.NewSessionStore(repo, time.Hour)
		handler = auth.NewHandler(service, auth.NewGuard(store, nil))
	})

	Describe("Login", func() {
		It("returns the login result on success", func() {
			service.loginResult = &auth.LoginResult{
				User:         auth.SanitizedUser{ID: "user-1", Email: "user@example.com", Role: auth.RoleManager},
				SessionToken: "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
			}

			body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "Sup3rSecret"})
			req := httptest.NewRequest(http.MethodPost, "/auth-login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var decoded map[string]json.RawMessage
			Expect(json.Unmarshal(rec.Body.Bytes(), &decoded)).To(Succeed())
			Expect(decoded).To(HaveKey("sessionToken"))
			Expect(decoded).To(HaveKey("user"))
		})

		It("returns 400 for an unparsable body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth-login", bytes.NewReader([]byte("{not json")))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps a credential denial to 401", func() {
			service.loginError = internal.ErrInvalidCredentials

			body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "bad"})
			req := httptest.NewRequest(http.MethodPost, "/auth-login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("maps a lockout to 429 with Retry-After", func() {
			service.loginError = internal.NewRateLimitedError("Too many failed attempts, try again later", 120)

			body, _ := json.Marshal(map[string]string{"email": "user@example.com", "password": "bad"})
			req := httptest.NewRequest(http.MethodPost, "/auth-login", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusTooManyRequests))
			Expect(rec.Header().Get("Retry-After")).To(Equal("120"))
		})
	})

	Describe("Logout", func() {
		It("passes the presented token to the service", func() {
			token := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
			req := httptest.NewRequest(http.MethodPost, "/auth-logout", nil)
			req.Header.Set(transport.SessionTokenHeader, token)
			rec := httptest.NewRecorder()

			handler.Logout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(service.logoutToken).To(Equal(token))
		})
	})

	Describe("SessionMiddleware", func() {
		var next http.Handler
		var sawIdentity *internal.SessionIdentity

		BeforeEach(func() {
			sawIdentity = nil
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if identity, ok := internal.SessionFromContext(r.Context()); ok {
					sawIdentity = &identity
				}
				w.WriteHeader(http.StatusOK)
			})
		})

		It("rejects a request without a token", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth-create-user", nil)
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(sawIdentity).To(BeNil())
		})

		It("attaches the identity for a live session", func() {
			token, err := store.Create("user-1", auth.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/auth-create-user", nil)
			req.Header.Set(transport.SessionTokenHeader, token)
			rec := httptest.NewRecorder()

			handler.SessionMiddleware(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(sawIdentity).NotTo(BeNil())
			Expect(sawIdentity.UserID).To(Equal("user-1"))
			Expect(sawIdentity.Role).To(Equal(auth.RoleAdmin))
		})
	})

	Describe("RequireAdmin", func() {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		It("allows an admin session through", func() {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/user-2", nil)
			ctx := internal.ContextWithSession(req.Context(), internal.SessionIdentity{UserID: "user-1", Role: auth.RoleAdmin})
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("denies a manager session", func() {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/user-2", nil)
			ctx := internal.ContextWithSession(req.Context(), internal.SessionIdentity{UserID: "user-1", Role: auth.RoleManager})
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req.WithContext(ctx))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("denies a request without an identity", func() {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/user-2", nil)
			rec := httptest.NewRecorder()

			handler.RequireAdmin(next).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
