package node

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"
)

// Node identifies the running relay-server process in logs and traces.
type Node struct {
	ID         string
	Hostname   string
	IPAddress  string
	Version    string
	CommitHash string
}

// Set at build time through -ldflags.
var Version = "development"
var CommitHash = "unknown"

var (
	current     *Node
	currentOnce sync.Once
)

func GetNodeInfo() *Node {
	currentOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil || hostname == "" {
			hostname = "localhost"
		}
		current = &Node{
			ID:         uuid.NewString(),
			Hostname:   hostname,
			IPAddress:  firstUnicastAddress(),
			Version:    Version,
			CommitHash: CommitHash,
		}
	})
	return current
}

// LogAttrs are attached to every log record of the process.
func (n *Node) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("version", n.Version),
		slog.String("node_id", n.ID),
	}
}

// firstUnicastAddress avoids any network round trip so it also works offline.
func firstUnicastAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip := ipNet.IP.To4(); ip != nil {
			return ip.String()
		}
	}
	return "127.0.0.1"
}
