package service_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/tenancy/internal/auth"
	"basegraph.app/tenancy/internal/events"
	"basegraph.app/tenancy/internal/lock"
	"basegraph.app/tenancy/internal/model"
	"basegraph.app/tenancy/internal/service"
	"basegraph.app/tenancy/internal/store"
)

func strPtr(s string) *string { return &s }

var _ = Describe("OrganizationService", func() {
	var (
		e       *env
		svc     service.OrganizationService
		creator *model.User
	)

	BeforeEach(func() {
		e = newEnv()
		svc = e.services.Organizations()
		creator = e.signup("Creator", "creator@example.com")
	})

	Describe("Create", func() {
		It("records the organization in the creator's created set", func() {
			org, err := svc.Create(e.ctx, identityOf(creator), "  Acme   Corp ", []string{"free", " pro "})
			Expect(err).NotTo(HaveOccurred())
			Expect(org.ID).NotTo(BeZero())
			Expect(org.Name).To(Equal("Acme Corp"))
			Expect(org.Tiers).To(Equal([]string{"free", "pro"}))
			Expect(org.CreatorID).To(Equal(creator.ID))

			u, err := e.mem.Users().GetByID(e.ctx, creator.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.CreatedOrgIDs).To(ConsistOf(org.ID))

			Expect(e.locker.keys).To(ContainElement([]string{lock.UserKey(creator.ID)}))
			Expect(e.publisher.types()).To(ContainElement(events.TypeOrganizationCreated))
		})

		It("requires an authenticated caller", func() {
			_, err := svc.Create(e.ctx, auth.Identity{}, "Acme", []string{"free"})
			Expect(err).To(MatchError(service.ErrUnauthenticated))
		})

		It("fails with NotFound when the caller no longer exists", func() {
			_, err := svc.Create(e.ctx, auth.Identity{UserID: 999}, "Acme", []string{"free"})
			Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())

			orgs, err := svc.List(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(orgs).To(BeEmpty())
		})

		DescribeTable("validates input",
			func(name string, tiers []string, field string) {
				_, err := svc.Create(e.ctx, identityOf(creator), name, tiers)
				var ve *service.ValidationError
				Expect(errors.As(err, &ve)).To(BeTrue())
				Expect(ve.Field).To(Equal(field))
				Expect(errors.Is(err, service.ErrValidation)).To(BeTrue())
			},
			Entry("empty name", "   ", []string{"free"}, "name"),
			Entry("long name", strings.Repeat("a", 256), []string{"free"}, "name"),
			Entry("no tiers", "Acme", nil, "tiers"),
			Entry("blank tier", "Acme", []string{"free", " "}, "tiers"),
		)
	})

	Describe("Update", func() {
		var org *model.Organization

		BeforeEach(func() {
			org = e.createOrg(creator, "Acme")
		})

		It("lets the creator rename", func() {
			updated, err := svc.Update(e.ctx, identityOf(creator), org.ID, service.UpdateOrganizationInput{Name: strPtr("Acme 2")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Acme 2"))
			Expect(updated.Tiers).To(Equal(org.Tiers))
			Expect(updated.CreatorID).To(Equal(creator.ID))
			Expect(e.locker.keys).To(ContainElement([]string{lock.OrgKey(org.ID)}))
		})

		It("lets an admin change tiers", func() {
			admin := e.signup("Admin", "admin@example.com")
			e.join(org, creator, admin, true)

			updated, err := svc.Update(e.ctx, identityOf(admin), org.ID, service.UpdateOrganizationInput{Tiers: []string{"gold", "silver", "bronze"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Tiers).To(Equal([]string{"gold", "silver", "bronze"}))
		})

		It("denies an unrelated user and leaves the organization unchanged", func() {
			stranger := e.signup("Stranger", "stranger@example.com")
			_, err := svc.Update(e.ctx, identityOf(stranger), org.ID, service.UpdateOrganizationInput{Name: strPtr("Hijacked")})
			Expect(errors.Is(err, service.ErrPermissionDenied)).To(BeTrue())

			current, err := svc.Get(e.ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Name).To(Equal("Acme"))
			Expect(current.Tiers).To(Equal(org.Tiers))
		})

		It("reports NotFound before checking permission", func() {
			stranger := e.signup("Stranger", "stranger@example.com")
			_, err := svc.Update(e.ctx, identityOf(stranger), 424242, service.UpdateOrganizationInput{Name: strPtr("x")})
			Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())
			Expect(errors.Is(err, service.ErrPermissionDenied)).To(BeFalse())
		})

		It("refuses to drop a tier that a membership uses", func() {
			member := e.signup("Member", "member@example.com")
			_, err := e.services.Memberships().Add(e.ctx, identityOf(member), org.ID, service.AddMembershipInput{TierIndex: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.Update(e.ctx, identityOf(creator), org.ID, service.UpdateOrganizationInput{Tiers: []string{"only"}})
			var ve *service.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Field).To(Equal("tiers"))
		})

		It("requires at least one field", func() {
			_, err := svc.Update(e.ctx, identityOf(creator), org.ID, service.UpdateOrganizationInput{})
			Expect(errors.Is(err, service.ErrValidation)).To(BeTrue())
		})
	})

	Describe("Delete", func() {
		var (
			org    *model.Organization
			member *model.User
		)

		BeforeEach(func() {
			org = e.createOrg(creator, "Acme")
			member = e.signup("Member", "member@example.com")
			e.join(org, creator, member, false)
		})

		It("cascades and returns the deleted snapshot", func() {
			deleted, err := svc.Delete(e.ctx, identityOf(creator), org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted.ID).To(Equal(org.ID))
			Expect(deleted.Name).To(Equal("Acme"))

			_, err = svc.Get(e.ctx, org.ID)
			Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())

			ms, err := e.mem.Memberships().ListByOrganization(e.ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ms).To(BeEmpty())

			u, err := e.mem.Users().GetByID(e.ctx, creator.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.CreatedOrgIDs).NotTo(ContainElement(org.ID))

			Expect(e.locker.keys).To(ContainElement([]string{lock.OrgKey(org.ID), lock.UserKey(creator.ID)}))
			Expect(e.publisher.types()).To(ContainElement(events.TypeOrganizationDeleted))
		})

		It("denies a regular member", func() {
			_, err := svc.Delete(e.ctx, identityOf(member), org.ID)
			Expect(errors.Is(err, service.ErrPermissionDenied)).To(BeTrue())

			_, err = svc.Get(e.ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns NotFound for a missing organization", func() {
			_, err := svc.Delete(e.ctx, identityOf(creator), 777)
			Expect(errors.Is(err, service.ErrNotFound)).To(BeTrue())
		})

		It("leaves everything in place when a cascade step fails", func() {
			boom := errors.New("disk full")
			e.faultInTx(&mockStoreProvider{orgs: &mockOrganizationStore{
				deleteFn: func(context.Context, int64) error { return boom },
			}})

			_, err := svc.Delete(e.ctx, identityOf(creator), org.ID)
			var cascadeErr *service.CascadeError
			Expect(errors.As(err, &cascadeErr)).To(BeTrue())
			Expect(cascadeErr.Step).To(Equal(service.StepDeleteOrganization))

			ms, err := e.mem.Memberships().ListByOrganization(e.ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ms).To(HaveLen(1))
			u, err := e.mem.Users().GetByID(e.ctx, creator.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.CreatedOrgIDs).To(ContainElement(org.ID))
			Expect(e.publisher.types()).NotTo(ContainElement(events.TypeOrganizationDeleted))
		})

		It("still succeeds when events cannot be published", func() {
			e.publisher.err = errors.New("redis down")
			_, err := svc.Delete(e.ctx, identityOf(creator), org.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("reads", func() {
		It("lists every organization", func() {
			a := e.createOrg(creator, "A")
			b := e.createOrg(creator, "B")
			orgs, err := svc.List(e.ctx)
			Expect(err).NotTo(HaveOccurred())
			ids := []int64{}
			for _, o := range orgs {
				ids = append(ids, o.ID)
			}
			Expect(ids).To(ConsistOf(a.ID, b.ID))
		})

		It("wraps store misses in NotFoundError", func() {
			_, err := svc.Get(e.ctx, 1)
			var nf *service.NotFoundError
			Expect(errors.As(err, &nf)).To(BeTrue())
			Expect(nf.ID).To(Equal(int64(1)))
			Expect(errors.Is(err, store.ErrNotFound)).To(BeFalse())
		})
	})
})
