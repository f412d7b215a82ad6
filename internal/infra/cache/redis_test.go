package cache_test

import (
	"context"
	"errors"
	"time"

	"relay-server/internal/infra/cache"
	mockcache "relay-server/test/unit/doubles/infra/cache"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/mock/gomock"
)

type reading struct {
	Temperature int
	Label       string
}

var _ = ginkgo.Describe("RedisCache", func() {
	var (
		ctrl       *gomock.Controller
		client     *mockcache.MockCacheClient
		redisCache *cache.RedisCache
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockcache.NewMockCacheClient(ctrl)
		redisCache = cache.NewRedisCacheWithClient(client, cache.DefaultRedisConfig())
		ctx = context.Background()
	})

	ginkgo.Context("Set", func() {
		ginkgo.It("should store the msgpack encoding of the value", func() {
			var stored []byte
			client.EXPECT().
				Set(gomock.Any(), "reading", gomock.Any(), time.Duration(0)).
				DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) *redis.StatusCmd {
					stored = value.([]byte)
					return redis.NewStatusCmd(ctx)
				})

			err := redisCache.Set(ctx, "reading", reading{Temperature: 27, Label: "Relay ON"}, 0)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			var decoded reading
			gomega.Expect(msgpack.Unmarshal(stored, &decoded)).To(gomega.Succeed())
			gomega.Expect(decoded).To(gomega.Equal(reading{Temperature: 27, Label: "Relay ON"}))
		})

		ginkgo.It("should wrap client errors", func() {
			cmd := redis.NewStatusCmd(ctx)
			cmd.SetErr(errors.New("connection refused"))
			client.EXPECT().Set(gomock.Any(), "reading", gomock.Any(), time.Duration(0)).Return(cmd)

			err := redisCache.Set(ctx, "reading", reading{}, 0)

			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("connection refused")))
		})
	})

	ginkgo.Context("Get", func() {
		ginkgo.It("should decode a stored value", func() {
			data, _ := msgpack.Marshal(reading{Temperature: 30})
			cmd := redis.NewStringCmd(ctx, "get", "reading")
			cmd.SetVal(string(data))
			client.EXPECT().Get(gomock.Any(), "reading").Return(cmd)

			var value reading
			found, err := redisCache.Get(ctx, "reading", &value)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found).To(gomega.BeTrue())
			gomega.Expect(value.Temperature).To(gomega.Equal(30))
		})

		ginkgo.It("should report a missing key without error", func() {
			cmd := redis.NewStringCmd(ctx, "get", "reading")
			cmd.SetErr(redis.Nil)
			client.EXPECT().Get(gomock.Any(), "reading").Return(cmd)

			var value reading
			found, err := redisCache.Get(ctx, "reading", &value)

			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(found).To(gomega.BeFalse())
		})

		ginkgo.It("should fail on undecodable data", func() {
			cmd := redis.NewStringCmd(ctx, "get", "reading")
			cmd.SetVal("\xc1")
			client.EXPECT().Get(gomock.Any(), "reading").Return(cmd)

			var value reading
			_, err := redisCache.Get(ctx, "reading", &value)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
