package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"basegraph.app/tenancy/common/logger"
	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/http/middleware"
)

var _ = Describe("Logger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		previous := slog.Default()
		slog.SetDefault(slog.New(logger.NewTraceHandler(slog.NewTextHandler(buf, nil))))
		DeferCleanup(func() { slog.SetDefault(previous) })
	})

	It("tags downstream logs and the access line with the http component and actor", func() {
		tokens, err := auth.NewTokenService("logging-secret", time.Hour)
		Expect(err).NotTo(HaveOccurred())
		tok, err := tokens.Sign(auth.Identity{UserID: 9, Email: "n@example.com"})
		Expect(err).NotTo(HaveOccurred())

		router := gin.New()
		router.Use(middleware.Logger())
		router.GET("/orgs/:id", middleware.RequireAuth(auth.NewResolver(tokens)), func(c *gin.Context) {
			Expect(logger.GetLogFields(c.Request.Context()).Component).To(Equal("tenancy.http"))
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/orgs/42", nil)
		req.Header.Set("Authorization", "Bearer "+tok.Value)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		out := buf.String()
		Expect(out).To(ContainSubstring("route=/orgs/:id"))
		Expect(out).To(ContainSubstring("path=/orgs/42"))
		Expect(out).To(ContainSubstring("component=tenancy.http"))
		Expect(out).To(ContainSubstring("actor_id=9"))
	})

	It("logs rejected requests as warnings", func() {
		router := gin.New()
		router.Use(middleware.Logger())
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

		Expect(buf.String()).To(ContainSubstring("level=WARN"))
		Expect(buf.String()).To(ContainSubstring("status=404"))
	})
})

var _ = Describe("Recovery", func() {
	It("turns a panic into a 500 and fails the request span", func() {
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		DeferCleanup(provider.Shutdown, context.Background())

		router := gin.New()
		router.Use(middleware.Recovery())
		router.GET("/boom", func(*gin.Context) { panic("boom") })

		ctx, span := provider.Tracer("test").Start(context.Background(), "GET /boom")
		req := httptest.NewRequest(http.MethodGet, "/boom", nil).WithContext(ctx)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		span.End()

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))

		ended := recorder.Ended()
		Expect(ended).To(HaveLen(1))
		Expect(ended[0].Status().Code).To(Equal(codes.Error))
		Expect(ended[0].Events()).NotTo(BeEmpty())
	})
})
