package stream

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MemoryStream", func() {
	var (
		ctx    context.Context
		stream *MemoryStream
	)

	BeforeEach(func() {
		ctx = context.Background()
		stream = NewMemoryStream(MemoryStreamOptions{Partitions: 2, PollInterval: 10 * time.Millisecond})
	})

	AfterEach(func() {
		stream.Close()
	})

	It("should report its partitions", func() {
		Expect(stream.Partitions(ctx)).To(Equal([]Partition{0, 1}))
	})

	It("should only deliver messages published after the receiver was opened", func() {
		Expect(stream.Publish(ctx, 0, "MT3620", []byte("old"))).To(Succeed())
		receiver, err := stream.OpenPartition(ctx, 0, StartFromNow)
		Expect(err).NotTo(HaveOccurred())
		Expect(stream.Publish(ctx, 0, "MT3620", []byte("new"))).To(Succeed())

		msg, err := receiver.Receive(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Payload).To(Equal([]byte("new")))
		Expect(msg.DeviceID).To(Equal("MT3620"))
		Expect(msg.Offset).To(Equal(int64(1)))
	})

	It("should replay retained messages when opened from the beginning", func() {
		retaining := NewMemoryStream(MemoryStreamOptions{Partitions: 2, Retention: 2})
		defer retaining.Close()
		for _, payload := range []string{"a", "b", "c"} {
			Expect(retaining.Publish(ctx, 1, "MT3620", []byte(payload))).To(Succeed())
		}
		receiver, err := retaining.OpenPartition(ctx, 1, StartFromBeginning)
		Expect(err).NotTo(HaveOccurred())

		for _, expected := range []string{"b", "c"} {
			msg, err := receiver.Receive(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(msg.Payload)).To(Equal(expected))
		}
	})

	It("should not keep consumed messages without retention", func() {
		receiver, _ := stream.OpenPartition(ctx, 0, StartFromNow)
		for i := 0; i < 1000; i++ {
			Expect(stream.Publish(ctx, 0, "MT3620", []byte("sample"))).To(Succeed())
			_, err := receiver.Receive(ctx)
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(stream.partitions[0].retained).To(BeEmpty())
		replay, _ := stream.OpenPartition(ctx, 0, StartFromBeginning)
		msg, err := replay.Receive(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(BeNil())
	})

	It("should deliver to every receiver when one of them is full", func() {
		full, _ := stream.OpenPartition(ctx, 0, StartFromNow)
		for i := 0; i < _memoryReceiverBuffer; i++ {
			Expect(stream.Publish(ctx, 0, "MT3620", []byte("fill"))).To(Succeed())
		}
		other, _ := stream.OpenPartition(ctx, 0, StartFromNow)

		err := stream.Publish(ctx, 0, "MT3620", []byte("last"))

		Expect(err).To(MatchError(ErrReceiverBufferFull))
		msg, err := other.Receive(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(msg.Payload)).To(Equal("last"))
		Expect(msg.Offset).To(Equal(int64(_memoryReceiverBuffer)))

		first, err := full.Receive(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(first.Payload)).To(Equal("fill"))
		Expect(stream.Publish(ctx, 0, "MT3620", []byte("next"))).To(Succeed())
	})

	It("should keep the partition order", func() {
		receiver, _ := stream.OpenPartition(ctx, 0, StartFromNow)
		for _, payload := range []string{"a", "b", "c"} {
			Expect(stream.Publish(ctx, 0, "MT3620", []byte(payload))).To(Succeed())
		}

		for _, expected := range []string{"a", "b", "c"} {
			msg, err := receiver.Receive(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(msg.Payload)).To(Equal(expected))
		}
	})

	It("should return an empty poll when nothing arrives", func() {
		receiver, _ := stream.OpenPartition(ctx, 0, StartFromNow)

		msg, err := receiver.Receive(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(msg).To(BeNil())
	})

	It("should stop receiving when the context is cancelled", func() {
		blocking := NewMemoryStream(MemoryStreamOptions{Partitions: 1})
		receiver, _ := blocking.OpenPartition(ctx, 0, StartFromNow)
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := receiver.Receive(cancelCtx)

		Expect(err).To(MatchError(context.Canceled))
	})

	It("should reject unknown partitions", func() {
		_, err := stream.OpenPartition(ctx, 7, StartFromNow)

		Expect(err).To(MatchError(ErrUnknownPartition))
	})

	It("should report a closed stream to receivers", func() {
		receiver, _ := stream.OpenPartition(ctx, 0, StartFromNow)
		Expect(stream.Close()).To(Succeed())

		_, err := receiver.Receive(ctx)

		Expect(err).To(MatchError(ErrStreamClosed))
		Expect(stream.Publish(ctx, 0, "MT3620", nil)).To(MatchError(ErrStreamClosed))
	})

	It("should route a device to a stable partition", func() {
		Expect(PartitionFor("MT3620", 4)).To(Equal(PartitionFor("MT3620", 4)))
		Expect(PartitionFor("MT3620", 1)).To(Equal(Partition(0)))
	})
})
