package communication_test

import (
	"context"
	"errors"

	"relay-server/internal/monitor/communication"
	"relay-server/internal/monitor/domain"
	mockmqtt "relay-server/test/unit/doubles/infra/mqtt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("MQTTCommandDispatcher", func() {
	var (
		ctrl   *gomock.Controller
		client *mockmqtt.MockClient
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		client = mockmqtt.NewMockClient(ctrl)
	})

	It("should publish the literal command to the device topic", func() {
		dispatcher := communication.NewMQTTCommandDispatcher(client, "devices")
		client.EXPECT().Publish("devices/MT3620/commands", []byte("On")).Return(nil)

		err := dispatcher.Dispatch(context.Background(), domain.NewCommand("MT3620", domain.CommandOn))

		Expect(err).NotTo(HaveOccurred())
	})

	It("should fall back to the default prefix", func() {
		dispatcher := communication.NewMQTTCommandDispatcher(client, "/")

		Expect(dispatcher.Topic("MT3620")).To(Equal("devices/MT3620/commands"))
	})

	It("should return publish errors", func() {
		dispatcher := communication.NewMQTTCommandDispatcher(client, "plant/relays/")
		client.EXPECT().Publish("plant/relays/MT3620/commands", []byte("Off")).Return(errors.New("not connected"))

		err := dispatcher.Dispatch(context.Background(), domain.NewCommand("MT3620", domain.CommandOff))

		Expect(err).To(MatchError(ContainSubstring("not connected")))
	})

	It("should disconnect the client on close", func() {
		dispatcher := communication.NewMQTTCommandDispatcher(client, "devices")
		client.EXPECT().Disconnect()

		Expect(dispatcher.Close()).To(Succeed())
	})
})
