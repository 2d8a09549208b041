package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/service"
	"basegraph.app/tenancy/internal/store"
)

var _ = Describe("ConsistencyCoordinator", func() {
	var (
		e       *env
		creator *model.User
		member  *model.User
		org     *model.Organization
		boom    error
	)

	BeforeEach(func() {
		e = newEnv()
		boom = errors.New("write failed")
		creator = e.signup("Creator", "creator@example.com")
		member = e.signup("Member", "member@example.com")
		org = e.createOrg(creator, "Acme")
		e.join(org, creator, member, true)
	})

	expectUntouched := func() {
		_, err := e.mem.Organizations().GetByID(e.ctx, org.ID)
		Expect(err).NotTo(HaveOccurred())

		c, err := e.mem.Users().GetByID(e.ctx, creator.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.CreatedOrgIDs).To(ConsistOf(org.ID))

		ms, err := e.mem.Memberships().ListByOrganization(e.ctx, org.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(ms).To(HaveLen(1))
	}

	Describe("DeleteOrganization", func() {
		It("removes the organization, its memberships and the creator reference", func() {
			cascade := service.NewConsistencyCoordinator(0)
			err := e.mem.WithTx(e.ctx, func(p store.Provider) error {
				return cascade.DeleteOrganization(e.ctx, p, org)
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = e.mem.Organizations().GetByID(e.ctx, org.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
			ms, err := e.mem.Memberships().ListByOrganization(e.ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ms).To(BeEmpty())
			c, err := e.mem.Users().GetByID(e.ctx, creator.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.CreatedOrgIDs).To(BeEmpty())
		})

		DescribeTable("rolls back every earlier step when one fails",
			func(step service.Step, p func() *mockStoreProvider) {
				cascade := service.NewConsistencyCoordinator(0)
				err := e.mem.WithTx(e.ctx, func(tx store.Provider) error {
					return cascade.DeleteOrganization(e.ctx, p().bind(tx), org)
				})

				var cascadeErr *service.CascadeError
				Expect(errors.As(err, &cascadeErr)).To(BeTrue())
				Expect(cascadeErr.Step).To(Equal(step))
				Expect(cascadeErr.ID).To(Equal(org.ID))
				Expect(errors.Is(err, boom)).To(BeTrue())
				expectUntouched()
			},
			Entry("memberships", service.StepDeleteOrgMemberships, func() *mockStoreProvider {
				return &mockStoreProvider{mems: &mockMembershipStore{
					deleteByOrganizationFn: func(context.Context, int64) (int64, error) { return 0, boom },
				}}
			}),
			Entry("organization", service.StepDeleteOrganization, func() *mockStoreProvider {
				return &mockStoreProvider{orgs: &mockOrganizationStore{
					deleteFn: func(context.Context, int64) error { return boom },
				}}
			}),
		)

		It("bounds each step with the store timeout", func() {
			cascade := service.NewConsistencyCoordinator(20 * time.Millisecond)
			p := &mockStoreProvider{mems: &mockMembershipStore{
				deleteByOrganizationFn: func(ctx context.Context, _ int64) (int64, error) {
					<-ctx.Done()
					return 0, ctx.Err()
				},
			}}
			err := e.mem.WithTx(e.ctx, func(tx store.Provider) error {
				return cascade.DeleteOrganization(e.ctx, p.bind(tx), org)
			})
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
			expectUntouched()
		})
	})

	Describe("DeleteUser", func() {
		It("removes created organizations, all memberships and the user", func() {
			other := e.signup("Other", "other@example.com")
			otherOrg := e.createOrg(other, "Other Org")
			e.join(otherOrg, other, creator, false)
			second := e.createOrg(creator, "Second")

			var deleted []model.Organization
			cascade := service.NewConsistencyCoordinator(0)
			err := e.mem.WithTx(e.ctx, func(p store.Provider) error {
				var err error
				deleted, err = cascade.DeleteUser(e.ctx, p, creator)
				return err
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(HaveLen(2))

			left, err := e.mem.Organizations().ListByCreator(e.ctx, creator.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(left).To(BeEmpty())
			for _, id := range []int64{org.ID, second.ID} {
				ms, err := e.mem.Memberships().ListByOrganization(e.ctx, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(ms).To(BeEmpty())
			}
			ms, err := e.mem.Memberships().ListByOrganization(e.ctx, otherOrg.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ms).To(BeEmpty())

			_, err = e.mem.Users().GetByID(e.ctx, creator.ID)
			Expect(err).To(MatchError(store.ErrNotFound))
			_, err = e.mem.Users().GetByID(e.ctx, member.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rolls back the organization cascades when the final step fails", func() {
			p := &mockStoreProvider{users: &mockUserStore{
				deleteFn: func(context.Context, int64) error { return boom },
			}}
			cascade := service.NewConsistencyCoordinator(0)
			err := e.mem.WithTx(e.ctx, func(tx store.Provider) error {
				_, err := cascade.DeleteUser(e.ctx, p.bind(tx), creator)
				return err
			})

			var cascadeErr *service.CascadeError
			Expect(errors.As(err, &cascadeErr)).To(BeTrue())
			Expect(cascadeErr.Step).To(Equal(service.StepDeleteUser))
			Expect(cascadeErr.Entity).To(Equal(service.EntityUser))
			expectUntouched()
		})

		It("names the nested organization step when that fails", func() {
			p := &mockStoreProvider{mems: &mockMembershipStore{
				deleteByOrganizationFn: func(context.Context, int64) (int64, error) { return 0, boom },
			}}
			cascade := service.NewConsistencyCoordinator(0)
			err := e.mem.WithTx(e.ctx, func(tx store.Provider) error {
				_, err := cascade.DeleteUser(e.ctx, p.bind(tx), creator)
				return err
			})

			var cascadeErr *service.CascadeError
			Expect(errors.As(err, &cascadeErr)).To(BeTrue())
			Expect(cascadeErr.Step).To(Equal(service.StepDeleteOrgMemberships))
			Expect(cascadeErr.Entity).To(Equal(service.EntityOrganization))
			expectUntouched()
		})
	})
})
