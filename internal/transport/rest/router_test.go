package rest_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/commerce-management/internal/transport/rest"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Router Suite")
}

var _ = Describe("RegisterAllRoutes", func() {
	newRouter := func(origins []string) *chi.Mux {
		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.RouterDeps{
			Logger:         slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})),
			AllowedOrigins: origins,
		})
		return router
	}

	preflight := func(router *chi.Mux, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should apply the configured allowed origins to CORS", func() {
		router := newRouter([]string{"https://shop.example.com"})

		w := preflight(router, "https://shop.example.com")
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://shop.example.com"))

		w = preflight(router, "https://evil.example.com")
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})

	It("should fall back to allowing any origin without configured origins", func() {
		router := newRouter(nil)

		w := preflight(router, "https://anywhere.example.com")
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
	})
})
