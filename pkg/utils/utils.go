// Copyright © 2024 The n2h-helper authors

package utils

import (
	"net"
	"os"
	"strings"

	"github.com/google/uuid"
)

// SanitizeName lowercases a VM or file name and makes it usable as a
// Kubernetes resource name.
func SanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, " ", "-")
	return strings.Trim(name, "-")
}

// RandomSuffix returns a short unique suffix for remote resource names.
func RandomSuffix() string {
	return uuid.NewString()[:8]
}

// ResolveLocalIP returns the address remote clusters can reach this host
// on, falling back to loopback when resolution fails.
func ResolveLocalIP() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "127.0.0.1"
	}
	addrs, err := net.LookupHost(hostname)
	if err != nil || len(addrs) == 0 {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		ip := net.ParseIP(addr)
		if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
			return addr
		}
	}
	return addrs[0]
}

// RemoveEmptyStrings filters empty entries out of a slice.
func RemoveEmptyStrings(slice []string) []string {
	var result []string
	for _, str := range slice {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}
