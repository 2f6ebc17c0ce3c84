// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

package service

import (
	"context"
	"fmt"
	"net"

	"github.com/tinkerhaus/crema/internal/pkg/logger"
)

// NetworkService detects the host machine's LAN-facing address.
// It backs the /api/network-ip probe endpoint.
type NetworkService struct {
	log logger.Logger
}

// NewNetworkService creates a new network service.
func NewNetworkService(log logger.Logger) *NetworkService {
	return &NetworkService{log: log}
}

// DetectLANIP returns the machine's LAN-facing IPv4 address by scanning
// network interfaces. Private-range addresses are preferred over other
// global unicast addresses.
func (s *NetworkService) DetectLANIP() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", fmt.Errorf("failed to list interfaces: %w", err)
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			s.log.Debug("failed to read addresses of %s: %v", iface.Name, err)
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			candidates = append(candidates, ipNet.IP)
		}
	}

	ip := FirstLANIP(candidates)
	if ip == "" {
		return "", fmt.Errorf("no LAN address detected")
	}
	return ip, nil
}

// NetworkIP implements the resolver's probe contract for in-process use.
func (s *NetworkService) NetworkIP(ctx context.Context) (string, error) {
	return s.DetectLANIP()
}

// FirstLANIP selects the best LAN candidate from a list of addresses: the
// first private IPv4, else the first global unicast IPv4, else "".
func FirstLANIP(candidates []net.IP) string {
	var fallback string
	for _, ip := range candidates {
		v4 := ip.To4()
		if v4 == nil || !v4.IsGlobalUnicast() {
			continue
		}
		if v4.IsPrivate() {
			return v4.String()
		}
		if fallback == "" {
			fallback = v4.String()
		}
	}
	return fallback
}
