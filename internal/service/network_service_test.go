package service_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tinkerhaus/crema/internal/service"
)

var _ = Describe("FirstLANIP", func() {
	parse := func(addrs ...string) []net.IP {
		ips := make([]net.IP, len(addrs))
		for i, a := range addrs {
			ips[i] = net.ParseIP(a)
		}
		return ips
	}

	DescribeTable("selects the best LAN candidate",
		func(addrs []string, expected string) {
			Expect(service.FirstLANIP(parse(addrs...))).To(Equal(expected))
		},
		Entry("prefers a private address over a public one",
			[]string{"203.0.113.7", "192.168.1.42"}, "192.168.1.42"),
		Entry("takes the first private address",
			[]string{"10.0.0.5", "192.168.1.42"}, "10.0.0.5"),
		Entry("falls back to a public address",
			[]string{"203.0.113.7"}, "203.0.113.7"),
		Entry("skips loopback",
			[]string{"127.0.0.1", "192.168.1.42"}, "192.168.1.42"),
		Entry("skips link-local",
			[]string{"169.254.1.9", "10.1.2.3"}, "10.1.2.3"),
		Entry("skips IPv6",
			[]string{"fe80::1", "2001:db8::1", "172.16.0.9"}, "172.16.0.9"),
		Entry("no candidates",
			[]string{"127.0.0.1", "::1"}, ""),
	)
})
