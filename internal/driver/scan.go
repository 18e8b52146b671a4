package driver

import (
	"github.com/dkkaraoke/dknw-tools/discovery"
)

// RunScanTerminals implements spec 6.2's scan_terminals: enumerate a
// CIDR, probe every address, and return every result (including silent
// no-response ones) for the caller to render.
func RunScanTerminals(cfg Config) ([]discovery.Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return discovery.Scan(cfg.Target, discovery.ScanConfig{
		Timeout: cfg.Timeout,
		Workers: cfg.Workers,
	})
}
