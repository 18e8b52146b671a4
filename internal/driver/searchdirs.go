package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FoundFile is one search_dirs hit (spec 6.2).
type FoundFile struct {
	Dir  int
	File int
	// Downloaded is true when cfg.Dest was set and the file was pulled
	// down to {dest}/{dir}.{file}.
	Downloaded bool
	Path       string
}

// searchFileNumbers returns the probe sequence spec 6.2 defines for a
// single dir: file = 10^i * j for i in 0..=5, j in 1..=9, then
// file = int("1" + MMDD) for today's local month-day.
func searchFileNumbers(now time.Time) []int {
	numbers := make([]int, 0, 55)
	pow := 1
	for i := 0; i <= 5; i++ {
		for j := 1; j <= 9; j++ {
			numbers = append(numbers, pow*j)
		}
		pow *= 10
	}
	mmdd := now.Format("0102")
	n, err := strconv.Atoi("1" + mmdd)
	if err == nil {
		numbers = append(numbers, n)
	}
	return numbers
}

// RunSearchDirs implements spec 6.2's search_dirs: for every dir in
// 1..=9998, probe the fixed file-number sequence and stop at the first
// hit. When cfg.Dest is set, each found file is downloaded to
// {dest}/{dir}.{file}.
func RunSearchDirs(cfg Config) ([]FoundFile, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := newFileClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(); err != nil {
		return nil, err
	}
	defer client.Disconnect()

	numbers := searchFileNumbers(time.Now())

	var found []FoundFile
	for dir := 1; dir <= 9998; dir++ {
		for _, file := range numbers {
			exists, err := client.Exists(dir, file)
			if err != nil {
				log.Debugf("driver: search_dirs probe dir=%d file=%d: %v", dir, file, err)
				continue
			}
			if !exists {
				continue
			}

			hit := FoundFile{Dir: dir, File: file}
			if cfg.Dest != "" {
				path := filepath.Join(cfg.Dest, fmt.Sprintf("%d.%d", dir, file))
				if err := downloadTo(client, dir, file, path); err != nil {
					log.Errorf("driver: search_dirs download dir=%d file=%d: %v", dir, file, err)
				} else {
					hit.Downloaded = true
					hit.Path = path
				}
			}
			found = append(found, hit)
			break // short-circuit: first hit per dir
		}
	}
	return found, nil
}

func downloadTo(client fileClient, dir, file int, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("driver: create %s: %w", path, err)
	}
	defer out.Close()
	_, err = client.DownloadFile(dir, file, out)
	return err
}
