package auth_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/voltmover/crm/internal/auth"
	userDatamodel "github.com/voltmover/crm/internal/core/datamodel/user"
	"github.com/voltmover/crm/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

type stubUserRepo struct {
	users map[string]*userDatamodel.User
}

func (s *stubUserRepo) GetByUsername(username string) (*userDatamodel.User, error) {
	if record, exists := s.users[username]; exists {
		return record, nil
	}
	return nil, auth.ErrInvalidCredentials
}

var _ = Describe("Auth Handler Integration", func() {
	var (
		handler *auth.Handler
		service *auth.Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		hash, err := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo := &stubUserRepo{users: map[string]*userDatamodel.User{
			"jdoe": {
				ID:           1,
				Email:        "jdoe@example.com",
				Username:     "jdoe",
				FullName:     "John Doe",
				PasswordHash: string(hash),
				Role:         userDatamodel.RoleSales,
				IsActive:     true,
			},
			"inactive": {
				ID:           2,
				Email:        "inactive@example.com",
				Username:     "inactive",
				FullName:     "Gone Fishing",
				PasswordHash: string(hash),
				Role:         userDatamodel.RoleUser,
				IsActive:     false,
			},
		}}

		tokenGen := auth.NewJWTTokenGenerator("integration-test-secret", 15*time.Minute)
		service = auth.NewService(repo, tokenGen, bcrypt.MinCost, slogger)
		handler = auth.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	Describe("Login", func() {
		It("should return a bearer token for valid credentials", func() {
			body := `{"username":"jdoe","password":"correct_password"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var tokens auth.Tokens
			Expect(json.NewDecoder(w.Body).Decode(&tokens)).To(Succeed())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.TokenType).To(Equal("bearer"))
		})

		It("should return 401 for wrong credentials", func() {
			body := `{"username":"jdoe","password":"wrong"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 403 for an inactive account", func() {
			body := `{"username":"inactive","password":"correct_password"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 422 for an incomplete body", func() {
			body := `{"username":"jdoe"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("Middleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				caller, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				Expect(caller.Username).To(Equal("jdoe"))
				w.WriteHeader(http.StatusOK)
			}))
		})

		login := func() string {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "jdoe", Password: "correct_password"})
			Expect(err).NotTo(HaveOccurred())
			return tokens.AccessToken
		}

		It("should pass a valid token through with the user on context", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
			req.Header.Set("Authorization", "Bearer "+login())
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("should return 401 without an Authorization header", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 401 for a garbage token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
			req.Header.Set("Authorization", "Bearer not.a.token")
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 401 for an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator("integration-test-secret", -1*time.Hour)
			token, err := expiredGen.GenerateAccessToken("jdoe")
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
