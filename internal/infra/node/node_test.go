package node_test

import (
	"net"

	"relay-server/internal/infra/node"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Node", func() {
	ginkgo.Context("GetNodeInfo", func() {
		ginkgo.It("should return node information with all fields", func() {
			nodeInfo := node.GetNodeInfo()

			gomega.Expect(nodeInfo).ToNot(gomega.BeNil())
			gomega.Expect(nodeInfo.Hostname).ToNot(gomega.BeEmpty())
			gomega.Expect(nodeInfo.Version).To(gomega.Equal(node.Version))
			gomega.Expect(nodeInfo.CommitHash).To(gomega.Equal(node.CommitHash))
		})

		ginkgo.It("should use a uuid as node id", func() {
			_, err := uuid.Parse(node.GetNodeInfo().ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should return the same node on every call", func() {
			gomega.Expect(node.GetNodeInfo()).To(gomega.BeIdenticalTo(node.GetNodeInfo()))
		})

		ginkgo.It("should return a valid IP address", func() {
			gomega.Expect(net.ParseIP(node.GetNodeInfo().IPAddress)).ToNot(gomega.BeNil())
		})
	})

	ginkgo.Context("LogAttrs", func() {
		ginkgo.It("should expose version and node id", func() {
			nodeInfo := node.GetNodeInfo()
			attrs := nodeInfo.LogAttrs()

			gomega.Expect(attrs).To(gomega.HaveLen(2))
			gomega.Expect(attrs[0].Key).To(gomega.Equal("version"))
			gomega.Expect(attrs[1].Value.String()).To(gomega.Equal(nodeInfo.ID))
		})
	})
})
