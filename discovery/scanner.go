package discovery

import (
	"bytes"
	"fmt"
	"net"
	"net/netip"
	"sync"
	"time"
)

// ScanConfig configures Scan (spec 4.9, 6.1).
type ScanConfig struct {
	Port    int
	Timeout time.Duration
	Workers int
}

func (c *ScanConfig) withDefaults() ScanConfig {
	out := *c
	if out.Port == 0 {
		out.Port = DefaultPort
	}
	if out.Timeout == 0 {
		out.Timeout = DefaultTimeout
	}
	if out.Workers == 0 {
		out.Workers = DefaultMaxWorkers
	}
	return out
}

// Validate rejects a ScanConfig that could not produce a working scan,
// mirroring the original Python NetworkConfig.validate().
func (c *ScanConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("discovery: port %d out of range", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("discovery: timeout must be positive")
	}
	if c.Workers <= 0 || c.Workers > 1000 {
		return fmt.Errorf("discovery: workers %d out of range", c.Workers)
	}
	return nil
}

// Result is one address's scan outcome. Response is nil when the
// address produced no usable response (connect failure, timeout, or
// parse error — all silent by design, spec 4.9).
type Result struct {
	Address  string
	Response *GetTerminalTypeResponseMessage
}

// String renders a Result as the one-line report spec 4.9 describes.
func (r Result) String() string {
	if r.Response == nil {
		return fmt.Sprintf("%s: no response", r.Address)
	}
	resp := r.Response
	return fmt.Sprintf(
		"%s: protocol_version=%d model_id=%s model_sub_id=%s serial=%s software_version=%s bb_index=%d printer_version=%s",
		r.Address, resp.ProtocolVersion, resp.ModelID, resp.ModelSubID,
		resp.Serial, resp.SoftwareVersion, resp.BBIndex, resp.PrinterVersion,
	)
}

// EnumerateAddresses lists every host address in cidr, excluding
// multicast and IANA-reserved ranges (spec 4.9).
func EnumerateAddresses(cidr string) ([]string, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return nil, fmt.Errorf("discovery: invalid CIDR %q: %w", cidr, err)
	}
	prefix = prefix.Masked()

	var addrs []string
	for addr := prefix.Addr(); prefix.Contains(addr); addr = addr.Next() {
		if addr.IsMulticast() || isReserved(addr) {
			continue
		}
		addrs = append(addrs, addr.String())
	}
	return addrs, nil
}

// reservedBlock is 240.0.0.0/4, the sole range Python's
// ipaddress.IPv4Address.is_reserved tests against; ordinary private
// (RFC 1918), loopback, and link-local ranges are deliberately NOT
// excluded here — DAM terminals live on exactly those LANs (SPEC_FULL,
// discovery module expansion).
var reservedBlock = netip.MustParsePrefix("240.0.0.0/4")

// isReserved reports whether addr falls in the IANA "reserved for
// future use" block, equivalent to Python's ipaddress.is_reserved.
func isReserved(addr netip.Addr) bool {
	return reservedBlock.Contains(addr)
}

// Scan sweeps cidr: for each non-reserved host address, a worker from a
// pool of config.Workers dials port config.Port, sends
// GetTerminalTypeRequest, reads up to 4096 bytes, and attempts to parse
// a response. Per-address failures are silent; the scan always
// completes (spec 4.9).
func Scan(cidr string, config ScanConfig) ([]Result, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	addrs, err := EnumerateAddresses(cidr)
	if err != nil {
		return nil, err
	}

	jobs := make(chan string)
	resultsCh := make(chan Result, len(addrs))

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for addr := range jobs {
				resultsCh <- probe(addr, config)
			}
		}()
	}

	for _, addr := range addrs {
		jobs <- addr
	}
	close(jobs)
	wg.Wait()
	close(resultsCh)

	results := make([]Result, 0, len(addrs))
	for r := range resultsCh {
		results = append(results, r)
	}
	return results, nil
}

func probe(addr string, config ScanConfig) Result {
	result := Result{Address: addr}

	target := net.JoinHostPort(addr, fmt.Sprintf("%d", config.Port))
	conn, err := net.DialTimeout("tcp", target, config.Timeout)
	if err != nil {
		log.Debugf("discovery: %s: connect failed: %v", addr, err)
		return result
	}
	defer conn.Close()

	request, err := EncodeMessageBytes(GetTerminalTypeRequestMessage{})
	if err != nil {
		log.Debugf("discovery: %s: encode request failed: %v", addr, err)
		return result
	}
	if err := conn.SetDeadline(time.Now().Add(config.Timeout)); err != nil {
		return result
	}
	if _, err := conn.Write(request); err != nil {
		log.Debugf("discovery: %s: send failed: %v", addr, err)
		return result
	}

	buf := make([]byte, DefaultBufferSize)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		log.Debugf("discovery: %s: no response: %v", addr, err)
		return result
	}

	msg, err := DecodeMessage(bytes.NewReader(buf[:n]))
	if err != nil {
		log.Debugf("discovery: %s: parse failed: %v", addr, err)
		return result
	}
	if resp, ok := msg.(GetTerminalTypeResponseMessage); ok {
		result.Response = &resp
	}
	return result
}
