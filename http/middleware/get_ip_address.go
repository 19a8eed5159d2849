package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/xy-planning-network/safespace"
)

const unknownIPAddr = "0.0.0.0"

// Non-public IPv4 ranges IANA defines beyond those net.IP.IsPrivate covers.
var reservedNets = []*net.IPNet{
	mustParseCIDR("100.64.0.0/10"),
	mustParseCIDR("192.0.0.0/24"),
	mustParseCIDR("198.18.0.0/15"),
}

func mustParseCIDR(cidr string) *net.IPNet {
	_, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}

	return n
}

// InjectIPAddress promotes the IP address found by GetIPAddress
// to the *http.Request.Context under safespace.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r.Header)
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), safespace.IpAddrKey, ip)))
		})
	}
}

// GetIPAddress parses the X-Forwarded-For and X-Real-Ip headers, in that order,
// for the public IP address the request came from.
// Addresses are read right to left, so the one nearest our proxy wins.
//
// If no public address is found, GetIPAddress returns 0.0.0.0.
func GetIPAddress(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(hm.Get(h), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			addr := strings.TrimSpace(addresses[i])
			if isPublic(net.ParseIP(addr)) {
				return addr
			}
		}
	}

	return unknownIPAddr
}

func isPublic(ip net.IP) bool {
	if ip == nil || !ip.IsGlobalUnicast() || ip.IsPrivate() {
		return false
	}

	for _, n := range reservedNets {
		if n.Contains(ip) {
			return false
		}
	}

	return true
}
