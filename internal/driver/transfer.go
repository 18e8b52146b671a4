package driver

import (
	"fmt"
	"os"
)

// RunDownloadFile implements spec 6.2's download_file: connect, fetch
// dir/file, write it to Dest, disconnect.
func RunDownloadFile(cfg Config) (int64, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	client, err := newFileClient(cfg)
	if err != nil {
		return 0, err
	}
	if err := client.Connect(); err != nil {
		return 0, err
	}
	defer client.Disconnect()

	out, err := os.Create(cfg.Dest)
	if err != nil {
		return 0, fmt.Errorf("driver: create %s: %w", cfg.Dest, err)
	}
	defer out.Close()

	return client.DownloadFile(cfg.Dir, cfg.File, out)
}

// RunUploadFile implements spec 6.2's upload_file: connect, push Src to
// dir/file, disconnect.
func RunUploadFile(cfg Config) (int64, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	in, err := os.Open(cfg.Src)
	if err != nil {
		return 0, fmt.Errorf("driver: open %s: %w", cfg.Src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("driver: stat %s: %w", cfg.Src, err)
	}

	client, err := newFileClient(cfg)
	if err != nil {
		return 0, err
	}
	if err := client.Connect(); err != nil {
		return 0, err
	}
	defer client.Disconnect()

	return client.UploadFile(in, info.Size(), cfg.Dir, cfg.File)
}
