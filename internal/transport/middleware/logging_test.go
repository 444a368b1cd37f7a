package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voltmover/crm/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("LoggingMiddleware", func() {
	var (
		logOutput *bytes.Buffer
		wrap      func(http.Handler) http.Handler
	)

	BeforeEach(func() {
		logOutput = &bytes.Buffer{}
		wrap = middleware.LoggingMiddleware(slog.New(slog.NewJSONHandler(logOutput, nil)))
	})

	It("should mask credentials in the request body and headers", func() {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"jdoe","password":"hunter2"}`))
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		wrap(inner).ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring("[REDACTED]"))
		Expect(logOutput.String()).To(ContainSubstring("jdoe"))
		Expect(logOutput.String()).NotTo(ContainSubstring("hunter2"))
		Expect(logOutput.String()).NotTo(ContainSubstring("abc.def.ghi"))
	})

	It("should leave the body readable for downstream handlers", func() {
		var received string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, err := io.ReadAll(r.Body)
			Expect(err).NotTo(HaveOccurred())
			received = string(b)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/contacts",
			strings.NewReader(`{"first_name":"Grace"}`))
		wrap(inner).ServeHTTP(httptest.NewRecorder(), req)

		Expect(received).To(Equal(`{"first_name":"Grace"}`))
	})

	It("should log the downstream status code", func() {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/contacts/99", nil)
		wrap(inner).ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring(`"status_code":404`))
		Expect(logOutput.String()).To(ContainSubstring("WARN"))
	})

	It("should default the status to 200 when the handler never sets one", func() {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"message":"ok"}`))
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		wrap(inner).ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).To(ContainSubstring(`"status_code":200`))
	})

	It("should mask token fields in the response body", func() {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"access_token":"abc.def.ghi","token_type":"bearer"}`))
		})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		wrap(inner).ServeHTTP(httptest.NewRecorder(), req)

		Expect(logOutput.String()).NotTo(ContainSubstring("abc.def.ghi"))
	})
})
