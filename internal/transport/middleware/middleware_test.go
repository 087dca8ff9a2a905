package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/commerce-management/internal/transport"
	"github.com/frahmantamala/commerce-management/internal/transport/middleware"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Middleware Suite")
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

var _ = Describe("CORS", func() {
	opts := middleware.CORSOptions{
		AllowedOrigins: []string{"https://shop.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}

	It("should echo a configured origin", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		w := httptest.NewRecorder()

		middleware.CORS(opts)(okHandler).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://shop.example.com"))
	})

	It("should not set CORS headers for an unlisted origin", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()

		middleware.CORS(opts)(okHandler).ServeHTTP(w, req)

		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("should short-circuit preflight requests", func() {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://shop.example.com")
		w := httptest.NewRecorder()

		middleware.CORS(opts)(okHandler).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Methods")).To(ContainSubstring("POST"))
	})
})

var _ = Describe("RateLimiter", func() {
	var limiter *middleware.RateLimiter

	AfterEach(func() {
		limiter.Stop()
	})

	sendFrom := func(handler http.Handler, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	It("should reject requests over the window limit with a 429 envelope", func() {
		limiter = middleware.NewRateLimiter(2, time.Minute)
		handler := limiter.Middleware(okHandler)

		Expect(sendFrom(handler, "10.0.0.1:1234").Code).To(Equal(http.StatusOK))
		Expect(sendFrom(handler, "10.0.0.1:1234").Code).To(Equal(http.StatusOK))

		w := sendFrom(handler, "10.0.0.1:1234")
		Expect(w.Code).To(Equal(http.StatusTooManyRequests))

		var env transport.Envelope
		Expect(json.NewDecoder(w.Body).Decode(&env)).To(Succeed())
		Expect(env.Success).To(BeFalse())
		Expect(env.Status).To(Equal(http.StatusTooManyRequests))
	})

	It("should track each client IP separately", func() {
		limiter = middleware.NewRateLimiter(1, time.Minute)
		handler := limiter.Middleware(okHandler)

		Expect(sendFrom(handler, "10.0.0.1:1234").Code).To(Equal(http.StatusOK))
		Expect(sendFrom(handler, "10.0.0.1:1234").Code).To(Equal(http.StatusTooManyRequests))
		Expect(sendFrom(handler, "10.0.0.2:1234").Code).To(Equal(http.StatusOK))
	})

	It("should tolerate Stop being called more than once", func() {
		limiter = middleware.NewRateLimiter(1, time.Minute)
		limiter.Stop()
		limiter.Stop()
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("should filter credential fields from the logged request body", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

		handler := middleware.LoggingMiddleware(logger)(okHandler)

		body := `{"email":"budi@mail.com","password":"super-secret-pw","access_token":"eyJhbGci"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		logged := buf.String()
		Expect(logged).To(ContainSubstring("[FILTERED]"))
		Expect(logged).To(ContainSubstring("budi@mail.com"))
		Expect(logged).NotTo(ContainSubstring("super-secret-pw"))
		Expect(logged).NotTo(ContainSubstring("eyJhbGci"))
	})
})
