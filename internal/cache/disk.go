package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Disk is the durable cache layer. Each entry is one zstd-compressed file
// named by its key; there is no index to corrupt, the directory is the
// index.
type Disk struct {
	mu      sync.Mutex
	dir     string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	stats   Stats
}

// NewDisk opens (creating if needed) a disk cache rooted at dir.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &Disk{dir: dir, encoder: encoder, decoder: decoder}, nil
}

// Get reads and decompresses the entry for key.
func (d *Disk) Get(key string) ([]byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	compressed, err := os.ReadFile(d.path(key))
	if err != nil {
		d.stats.Misses++
		return nil, false
	}

	value, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		// Unreadable entry: drop it so the next Put rewrites it.
		_ = os.Remove(d.path(key))
		d.stats.Misses++
		return nil, false
	}

	d.stats.Hits++
	return value, true
}

// Put compresses and writes the entry for key.
func (d *Disk) Put(key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	compressed := d.encoder.EncodeAll(value, nil)
	if err := os.WriteFile(d.path(key), compressed, 0o644); err != nil {
		return err
	}
	d.stats.ItemCount++
	d.stats.Size += int64(len(compressed))
	return nil
}

// Clear removes every entry in the cache directory.
func (d *Disk) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".zst" {
			_ = os.Remove(filepath.Join(d.dir, entry.Name()))
		}
	}
	d.stats.ItemCount = 0
	d.stats.Size = 0
	return nil
}

// Stats returns a snapshot of the layer's counters.
func (d *Disk) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Disk) path(key string) string {
	return filepath.Join(d.dir, key+".zst")
}
