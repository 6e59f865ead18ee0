// Copyright 2026 The Composer Authors
// SPDX-License-Identifier: Apache-2.0

package stencil

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/stencilcms/composer/lib/clock"
)

// WatchConfig configures WatchFile.
type WatchConfig struct {
	Clock  clock.Clock
	Logger *slog.Logger

	// Debounce is how long to wait after an event before reporting it,
	// so a burst of writes becomes one notification. Defaults to 50ms.
	Debounce time.Duration
}

// WatchFile notifies on the returned channel whenever path is written
// (closed after writing) or renamed into place. The parent directory is
// watched rather than the file, so atomic replacements that create a
// new inode are seen.
//
// The channel has capacity one; notifications that arrive while one is
// pending are merged. It closes when ctx is done or the watch fails.
func WatchFile(ctx context.Context, path string, config WatchConfig) (<-chan struct{}, error) {
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}

	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, err
	}
	if _, err := unix.InotifyAddWatch(fd, filepath.Dir(absolutePath), unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return nil, err
	}

	notify := make(chan struct{}, 1)
	go watchLoop(ctx, fd, filepath.Base(absolutePath), config, notify)
	return notify, nil
}

// watchLoop polls with a 100ms timeout so cancellation is noticed
// promptly.
func watchLoop(ctx context.Context, fd int, filename string, config WatchConfig, notify chan<- struct{}) {
	defer close(notify)
	defer unix.Close(fd)

	buffer := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return
		}

		pollDescriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(pollDescriptors, 100)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			config.Logger.Warn("site file watch stopped", "file", filename, "error", err)
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				continue
			}
			config.Logger.Warn("site file watch stopped", "file", filename, "error", err)
			return
		}
		if !eventsMention(buffer[:bytesRead], filename) {
			continue
		}

		select {
		case <-config.Clock.After(config.Debounce):
		case <-ctx.Done():
			return
		}
		drainEvents(fd, buffer)

		select {
		case notify <- struct{}{}:
		default:
		}
	}
}

// eventsMention reports whether any inotify event in buffer names
// filename. Each event is a 16-byte header (wd, mask, cookie, len)
// followed by len bytes of NUL-padded name.
func eventsMention(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		end := offset + unix.SizeofInotifyEvent + nameLength
		if end > len(buffer) {
			return false
		}
		if nameLength > 0 && trimNUL(buffer[offset+unix.SizeofInotifyEvent:end]) == filename {
			return true
		}
		offset = end
	}
	return false
}

func trimNUL(data []byte) string {
	for index, value := range data {
		if value == 0 {
			return string(data[:index])
		}
	}
	return string(data)
}

// drainEvents discards queued events so a burst yields one
// notification.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}
