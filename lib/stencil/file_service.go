// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"

	"github.com/stencilcms/composer/lib/clock"
	"github.com/stencilcms/composer/lib/codec"
	"github.com/stencilcms/composer/lib/schema/site"
)

// File formats are chosen by extension. A trailing ".zst" wraps either
// format in zstd compression: "site.json.zst", "site.cbor.zst".
const (
	extensionZstd = ".zst"
	extensionCBOR = ".cbor"
)

// zstdEncoder and zstdDecoder are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("stencil: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("stencil: zstd decoder initialization failed: " + err.Error())
	}
}

// FileConfig configures a FileService.
type FileConfig struct {
	Clock  clock.Clock
	NewID  func() string
	Logger *slog.Logger
}

// FileService is a Service backed by a site file on disk. The file is
// JSON with comments (JSONC) or CBOR, optionally zstd-compressed.
// Reads come from memory; LoadSite re-reads the file only when its
// BLAKE3 hash changed, so edits made by other tools are picked up.
// Every mutation rewrites the file atomically (temp file and rename).
//
// Comments in a JSONC file are not preserved across a write.
type FileService struct {
	*Memory

	path   string
	logger *slog.Logger

	// hash is the BLAKE3 digest of the file as last read or written.
	// Guarded by the Memory lock: write runs inside a mutation and
	// Refresh inside exclusive.
	hash [32]byte
}

var _ Service = (*FileService)(nil)

// OpenFile loads path into a new FileService. A missing file starts an
// empty site; the file is created on the first mutation.
func OpenFile(path string, config FileConfig) (*FileService, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	service := &FileService{path: absolutePath, logger: config.Logger}
	graph, hash, err := readSiteFile(absolutePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		graph = site.New()
	case err != nil:
		return nil, err
	default:
		service.hash = hash
	}

	service.Memory = NewMemory(graph, MemoryConfig{
		Clock:  config.Clock,
		NewID:  config.NewID,
		Commit: service.write,
	})
	return service, nil
}

// Path returns the absolute path of the site file.
func (s *FileService) Path() string { return s.path }

// LoadSite refreshes from disk and returns the current graph.
func (s *FileService) LoadSite(ctx context.Context) (*site.Site, error) {
	if _, err := s.Refresh(); err != nil {
		return nil, err
	}
	return s.Memory.LoadSite(ctx)
}

// Refresh re-reads the file and reports whether its content changed
// since the last read or write. A file that has disappeared keeps the
// in-memory graph.
func (s *FileService) Refresh() (bool, error) {
	graph, hash, err := readSiteFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	changed := false
	s.Memory.exclusive(func(*site.Site) *site.Site {
		if hash == s.hash {
			return nil
		}
		s.hash = hash
		changed = true
		return graph
	})
	if changed {
		s.logger.Info("site file changed", "path", s.path, "articles", len(graph.Articles), "pages", len(graph.Pages))
	}
	return changed, nil
}

// Watch returns a channel that receives whenever the site file changes
// content. Writes made through this service do not trigger it. The
// channel closes when ctx is cancelled or the watch fails.
func (s *FileService) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := WatchFile(ctx, s.path, WatchConfig{Logger: s.logger})
	if err != nil {
		return nil, err
	}
	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for range events {
			changed, err := s.Refresh()
			if err != nil {
				s.logger.Warn("re-reading site file", "path", s.path, "error", err)
				continue
			}
			if changed {
				select {
				case changes <- struct{}{}:
				default:
				}
			}
		}
	}()
	return changes, nil
}

// write is the Memory commit hook.
func (s *FileService) write(graph *site.Site) error {
	data, err := encodeSiteFile(s.path, graph)
	if err != nil {
		return Internal("encoding site file: %w", err)
	}

	directory := filepath.Dir(s.path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return Internal("creating temporary site file: %w", err)
	}
	temporaryPath := temporary.Name()
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		os.Remove(temporaryPath)
		return Internal("writing site file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryPath)
		return Internal("writing site file: %w", err)
	}
	if err := os.Rename(temporaryPath, s.path); err != nil {
		os.Remove(temporaryPath)
		return Internal("replacing site file: %w", err)
	}
	s.hash = blake3.Sum256(data)
	return nil
}

// readSiteFile reads and decodes a site file, returning the graph and
// the hash of the raw bytes.
func readSiteFile(path string) (*site.Site, [32]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, [32]byte{}, err
	}
	hash := blake3.Sum256(data)
	graph, err := decodeSiteFile(path, data)
	if err != nil {
		return nil, [32]byte{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return graph, hash, nil
}

func decodeSiteFile(path string, data []byte) (*site.Site, error) {
	name := path
	if strings.HasSuffix(name, extensionZstd) {
		name = strings.TrimSuffix(name, extensionZstd)
		decompressed, err := zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		data = decompressed
	}

	var graph site.Site
	if strings.HasSuffix(name, extensionCBOR) {
		if err := codec.Unmarshal(data, &graph); err != nil {
			return nil, err
		}
	} else {
		if err := json.Unmarshal(jsonc.ToJSON(data), &graph); err != nil {
			return nil, err
		}
	}
	graph.Normalize()
	return &graph, nil
}

func encodeSiteFile(path string, graph *site.Site) ([]byte, error) {
	name := strings.TrimSuffix(path, extensionZstd)

	var data []byte
	var err error
	if strings.HasSuffix(name, extensionCBOR) {
		data, err = codec.Marshal(graph)
	} else {
		data, err = json.MarshalIndent(graph, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return nil, err
	}

	if name != path {
		data = zstdEncoder.EncodeAll(data, nil)
	}
	return data, nil
}
