package discovery

import (
	"net"
	"testing"
	"time"
)

// TestEnumerateAddresses_TestNet exercises spec §8 scenario 6: scanning
// 192.0.2.0/30 enumerates all 4 addresses (network and broadcast
// included, matching the original's unfiltered iteration over
// ipaddress.IPv4Network).
func TestEnumerateAddresses_TestNet(t *testing.T) {
	addrs, err := EnumerateAddresses("192.0.2.0/30")
	if err != nil {
		t.Fatalf("EnumerateAddresses: %v", err)
	}
	want := []string{"192.0.2.0", "192.0.2.1", "192.0.2.2", "192.0.2.3"}
	if len(addrs) != len(want) {
		t.Fatalf("got %v, want %v", addrs, want)
	}
	for i, a := range want {
		if addrs[i] != a {
			t.Errorf("addrs[%d] = %s, want %s", i, addrs[i], a)
		}
	}
}

func TestEnumerateAddresses_ExcludesReservedBlock(t *testing.T) {
	addrs, err := EnumerateAddresses("240.0.0.0/30")
	if err != nil {
		t.Fatalf("EnumerateAddresses: %v", err)
	}
	if len(addrs) != 0 {
		t.Errorf("240.0.0.0/30 should be entirely filtered as reserved, got %v", addrs)
	}
}

func TestEnumerateAddresses_IncludesPrivateLAN(t *testing.T) {
	addrs, err := EnumerateAddresses("192.168.1.0/30")
	if err != nil {
		t.Fatalf("EnumerateAddresses: %v", err)
	}
	if len(addrs) != 4 {
		t.Fatalf("RFC1918 LAN addresses must not be filtered (DAM terminals live there), got %v", addrs)
	}
}

func TestEnumerateAddresses_ExcludesMulticast(t *testing.T) {
	addrs, err := EnumerateAddresses("224.0.0.0/30")
	if err != nil {
		t.Fatalf("EnumerateAddresses: %v", err)
	}
	if len(addrs) != 0 {
		t.Errorf("224.0.0.0/30 is multicast and should be entirely filtered, got %v", addrs)
	}
}

func TestEnumerateAddresses_InvalidCIDR(t *testing.T) {
	if _, err := EnumerateAddresses("not-a-cidr"); err == nil {
		t.Error("EnumerateAddresses with an invalid CIDR should fail")
	}
}

func TestScan_AllTimeoutsCompleteCleanly(t *testing.T) {
	// No listeners on these addresses: every probe should time out or
	// fail to connect, and Scan must still return promptly with a
	// silent-failure Result per address (spec §8 scenario 6).
	results, err := Scan("192.0.2.0/30", ScanConfig{Timeout: 50 * time.Millisecond, Workers: 4})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for _, r := range results {
		if r.Response != nil {
			t.Errorf("unexpected response from %s: %+v", r.Address, r.Response)
		}
	}
}

func TestScan_RespondingTerminal(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 64)
		if _, err := conn.Read(buf); err != nil {
			return
		}

		resp := GetTerminalTypeResponseMessage{ProtocolVersion: 1, BBIndex: 3}
		copy(resp.ModelID[:], "M1")
		copy(resp.ModelSubID[:], "S1")
		copy(resp.Serial[:], "DKNW0001")
		copy(resp.SoftwareVersion[:], "SW000001")
		copy(resp.PrinterVersion[:], "PV01")
		encoded, _ := EncodeMessageBytes(resp)
		conn.Write(encoded)
	}()

	port := ln.Addr().(*net.TCPAddr).Port
	result := probe("127.0.0.1", ScanConfig{Port: port, Timeout: time.Second})
	if result.Response == nil {
		t.Fatal("probe got no response from a live listener")
	}
	if result.Response.BBIndex != 3 {
		t.Errorf("BBIndex = %d, want 3", result.Response.BBIndex)
	}
}
