package mqtt_test

import (
	"relay-server/internal/infra/mqtt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("MQTT Client", func() {
	ginkgo.Context("NewSimpleClient", func() {
		ginkgo.When("the broker is unreachable", func() {
			ginkgo.It("should return an error instead of a client", func() {
				client, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
					Broker:   "tcp://127.0.0.1:1",
					ClientID: "test-client",
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("connecting to tcp://127.0.0.1:1"))
				gomega.Expect(client).To(gomega.BeNil())
			})
		})
	})
})
