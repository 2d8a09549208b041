package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/http/middleware"
)

var _ = Describe("RequireAuth", func() {
	var (
		router *gin.Engine
		tokens *auth.TokenService
		seen   auth.Identity
	)

	BeforeEach(func() {
		var err error
		tokens, err = auth.NewTokenService("middleware-secret", time.Hour)
		Expect(err).NotTo(HaveOccurred())

		seen = auth.Identity{}
		router = gin.New()
		router.Use(middleware.RequireAuth(auth.NewResolver(tokens)))
		router.GET("/me", func(c *gin.Context) {
			seen = middleware.GetIdentity(c)
			fromCtx, ok := auth.IdentityFrom(c.Request.Context())
			Expect(ok).To(BeTrue())
			Expect(fromCtx).To(Equal(seen))
			c.Status(http.StatusNoContent)
		})
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	errorOf := func(w *httptest.ResponseRecorder) string {
		var body map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		return body["error"]
	}

	It("passes the verified identity to the handler", func() {
		tok, err := tokens.Sign(auth.Identity{UserID: 42, Email: "a@example.com"})
		Expect(err).NotTo(HaveOccurred())

		w := call("Bearer " + tok.Value)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(seen).To(Equal(auth.Identity{UserID: 42, Email: "a@example.com"}))
	})

	It("rejects a missing header", func() {
		w := call("")
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorOf(w)).To(Equal("not authenticated"))
		Expect(seen.IsZero()).To(BeTrue())
	})

	It("rejects a malformed or forged token", func() {
		Expect(errorOf(call("Basic abc"))).To(Equal("invalid token"))

		other, err := auth.NewTokenService("someone-else", time.Hour)
		Expect(err).NotTo(HaveOccurred())
		tok, err := other.Sign(auth.Identity{UserID: 1})
		Expect(err).NotTo(HaveOccurred())

		w := call("Bearer " + tok.Value)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorOf(w)).To(Equal("invalid token"))
	})

	It("reports expired tokens", func() {
		past := tokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
		tok, err := past.Sign(auth.Identity{UserID: 7})
		Expect(err).NotTo(HaveOccurred())

		w := call("Bearer " + tok.Value)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(errorOf(w)).To(Equal("token expired"))
	})
})

