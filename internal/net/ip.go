package net

import (
	"log"
	"net"
)

// OutgoingIP finds the LAN address to put in the share link. It never
// fails: with no usable interface it falls back to loopback.
func OutgoingIP() string {
	// No packet is sent; dialing UDP only picks the route.
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err == nil {
		defer conn.Close()
		if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
			return addr.IP.String()
		}
	}
	return interfaceIP()
}

// interfaceIP is used on networks without internet access.
func interfaceIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		log.Printf("[NET] Listing interfaces: %v", err)
		return "127.0.0.1"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.To4() != nil {
				return ipnet.IP.String()
			}
		}
	}
	log.Println("[NET] No suitable local IP found, share link uses loopback")
	return "127.0.0.1"
}
