package stream

import (
	"context"
	"errors"
	"time"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("KafkaStream", func() {
	var (
		ctx      context.Context
		consumer *mocks.Consumer
		stream   *KafkaStream
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = mocks.NewConsumer(GinkgoT(), newSaramaConfig("test"))
		consumer.SetTopicMetadata(map[string][]int32{"telemetry": {0, 1, 2}})
		stream = newKafkaStream(nil, consumer, KafkaStreamOptions{
			Topic:        "telemetry",
			PollInterval: 20 * time.Millisecond,
		})
	})

	It("should list the topic partitions", func() {
		Expect(stream.Partitions(ctx)).To(Equal([]Partition{0, 1, 2}))
	})

	When("a record carries the device id header", func() {
		It("should take the device id from the header", func() {
			pc := consumer.ExpectConsumePartition("telemetry", 1, sarama.OffsetNewest)
			pc.YieldMessage(&sarama.ConsumerMessage{
				Key:   []byte("ignored"),
				Value: []byte(`{"temperature":27}`),
				Headers: []*sarama.RecordHeader{
					{Key: []byte(DefaultDeviceIDHeader), Value: []byte("MT3620")},
				},
			})

			receiver, err := stream.OpenPartition(ctx, 1, StartFromNow)
			Expect(err).NotTo(HaveOccurred())
			defer receiver.Close()

			msg, err := receiver.Receive(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(msg.DeviceID).To(Equal("MT3620"))
			Expect(msg.Payload).To(Equal([]byte(`{"temperature":27}`)))
		})
	})

	When("a record has no header", func() {
		It("should fall back to the record key", func() {
			pc := consumer.ExpectConsumePartition("telemetry", 0, sarama.OffsetNewest)
			pc.YieldMessage(&sarama.ConsumerMessage{Key: []byte("MT3620"), Value: []byte("{}")})

			receiver, _ := stream.OpenPartition(ctx, 0, StartFromNow)
			defer receiver.Close()

			msg, err := receiver.Receive(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(msg.DeviceID).To(Equal("MT3620"))
		})
	})

	When("the partition yields an error", func() {
		It("should return it without closing the receiver", func() {
			pc := consumer.ExpectConsumePartition("telemetry", 2, sarama.OffsetNewest)
			pc.YieldError(errors.New("broker not available"))

			receiver, _ := stream.OpenPartition(ctx, 2, StartFromNow)
			defer receiver.Close()

			_, err := receiver.Receive(ctx)

			Expect(err).To(MatchError(ContainSubstring("broker not available")))
		})
	})

	When("nothing arrives within the poll interval", func() {
		It("should return an empty poll", func() {
			consumer.ExpectConsumePartition("telemetry", 0, sarama.OffsetNewest)

			receiver, _ := stream.OpenPartition(ctx, 0, StartFromNow)
			defer receiver.Close()

			msg, err := receiver.Receive(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(msg).To(BeNil())
		})
	})
})

var _ = Describe("KafkaProducer", func() {
	It("should key records by device id and tag them with the header", func() {
		producer := mocks.NewSyncProducer(GinkgoT(), newSaramaConfig("test"))
		producer.ExpectSendMessageAndSucceed()
		kafkaProducer := newKafkaProducer(producer, KafkaStreamOptions{Topic: "telemetry"})

		err := kafkaProducer.Send(context.Background(), "MT3620", []byte("{}"))

		Expect(err).NotTo(HaveOccurred())
		Expect(kafkaProducer.Close()).To(Succeed())
	})
})
