package events_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"basegraph.app/tenancy/internal/events"
)

var _ = Describe("RedisPublisher", func() {
	var (
		mr        *miniredis.Miniredis
		client    *redis.Client
		publisher events.Publisher
		ctx       context.Context
	)

	BeforeEach(func() {
		var err error
		mr, err = miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		publisher = events.NewRedisPublisher(client, "tenancy_events", 0, nil)
		ctx = context.Background()
	})

	AfterEach(func() {
		_ = client.Close()
		mr.Close()
	})

	It("appends one stream entry per event", func() {
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		err := publisher.Publish(ctx,
			events.Event{Type: events.TypeOrganizationDeleted, OrganizationID: 10, ActorID: 1, OccurredAt: at},
			events.Event{Type: events.TypeUserDeleted, UserID: 1, ActorID: 1, OccurredAt: at},
		)
		Expect(err).NotTo(HaveOccurred())

		entries, err := client.XRange(ctx, "tenancy_events", "-", "+").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(2))

		Expect(entries[0].Values).To(HaveKeyWithValue("type", "organization.deleted"))
		Expect(entries[0].Values).To(HaveKeyWithValue("organization_id", "10"))
		Expect(entries[0].Values).To(HaveKeyWithValue("occurred_at", "2026-01-02T03:04:05Z"))
		Expect(entries[0].Values).NotTo(HaveKey("user_id"))
		Expect(entries[1].Values).To(HaveKeyWithValue("user_id", "1"))
	})

	It("does nothing for an empty batch", func() {
		Expect(publisher.Publish(ctx)).To(Succeed())
		Expect(mr.Exists("tenancy_events")).To(BeFalse())
	})

	It("surfaces connection failures", func() {
		down, err := miniredis.Run()
		Expect(err).NotTo(HaveOccurred())
		addr := down.Addr()
		down.Close()

		c := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
		defer c.Close()
		err = events.NewRedisPublisher(c, "tenancy_events", 0, nil).
			Publish(ctx, events.Event{Type: events.TypeUserCreated, UserID: 1})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("NoopPublisher", func() {
	It("accepts anything", func() {
		Expect(events.NewNoopPublisher().Publish(context.Background(), events.Event{Type: events.TypeUserCreated})).To(Succeed())
	})
})
