package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/service"
)

var _ = Describe("AuthService", func() {
	var (
		e    *env
		svc  service.AuthService
		user *model.User
	)

	BeforeEach(func() {
		e = newEnv()
		svc = e.services.Auth()
		user = e.signup("Ada", "ada@example.com")
	})

	It("issues a token that verifies to the stored user", func() {
		res, err := svc.Login(e.ctx, "ada@example.com", "password123")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.UserID).To(Equal(user.ID))
		Expect(res.ExpiresIn(time.Now())).To(BeNumerically("~", time.Hour, time.Minute))

		identity, err := e.tokens.Verify(res.Token)
		Expect(err).NotTo(HaveOccurred())
		Expect(identity.UserID).To(Equal(user.ID))
		Expect(identity.Email).To(Equal(user.Email))
	})

	It("matches emails case-insensitively", func() {
		_, err := svc.Login(e.ctx, "  ADA@example.com ", "password123")
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports a wrong password as a mismatch", func() {
		_, err := svc.Login(e.ctx, "ada@example.com", "wrong-password")
		Expect(err).To(MatchError(service.ErrPasswordMismatch))
		Expect(errors.Is(err, service.ErrInvalidCredentials)).To(BeTrue())
		Expect(errors.Is(err, service.ErrNotFound)).To(BeFalse())
	})

	It("rejects a password that only shares the first 72 bytes", func() {
		password := strings.Repeat("a", 72)
		_, err := e.services.Users().Create(e.ctx, "Long", "long@example.com", password)
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Login(e.ctx, "long@example.com", password+"-not-my-password")
		Expect(err).To(MatchError(service.ErrPasswordMismatch))

		_, err = svc.Login(e.ctx, "long@example.com", password)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reports an unknown email as not found", func() {
		_, err := svc.Login(e.ctx, "nobody@example.com", "password123")
		Expect(err).To(MatchError(service.ErrUserNotFound))
		Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())
		Expect(errors.Is(err, service.ErrInvalidCredentials)).To(BeTrue())
	})

	It("changes nothing on failure", func() {
		before, err := e.mem.Users().GetByID(e.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())

		_, _ = svc.Login(e.ctx, "ada@example.com", "nope-nope")
		_, _ = svc.Login(e.ctx, "ghost@example.com", "nope-nope")

		after, err := e.mem.Users().GetByID(e.ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(after).To(Equal(before))
		Expect(e.txRunner.calls).To(BeZero())
	})

	It("reports store failures as such", func() {
		boom := errors.New("db down")
		users := &mockUserStore{}
		users.UserStore = e.mem.Users()
		failing := &failingEmailStore{mockUserStore: users, err: boom}

		_, err := service.NewAuthService(failing, nil, e.tokens, service.Options{}).Login(context.Background(), "ada@example.com", "x")
		Expect(errors.Is(err, boom)).To(BeTrue())
		Expect(errors.Is(err, service.ErrInvalidCredentials)).To(BeFalse())
	})
})

type failingEmailStore struct {
	*mockUserStore
	err error
}

func (f *failingEmailStore) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, f.err
}
