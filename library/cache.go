package library

import (
	"log/slog"

	"github.com/gopxl/beep/v2"
)

// predecoded holds a decoded sound and its format
type predecoded struct {
	buffer *beep.Buffer
	format beep.Format
}

func (p *predecoded) streamer() beep.StreamSeekCloser {
	return nopCloser{p.buffer.Streamer(0, p.buffer.Len())}
}

type nopCloser struct {
	beep.StreamSeeker
}

func (nopCloser) Close() error { return nil }

// Preload decodes every mapped sound into memory. Failures are logged and the
// sound is decoded from disk on demand instead.
func (l *Library) Preload() int {
	l.logger.Info("Preloading and decoding sounds...")

	loaded := 0
	for _, entry := range l.Entries() {
		if !entry.Exists {
			l.logger.Warn("Sound file missing", slog.String("tag", entry.ID), slog.String("path", entry.Path))
			continue
		}
		if _, ok := l.cached(entry.Path); ok {
			continue
		}
		if err := l.preloadFile(entry.Path); err != nil {
			l.logger.Error("Failed to preload sound", slog.String("path", entry.Path), slog.Any("error", err))
			continue
		}
		loaded++
	}

	l.logger.Info("Preloading complete", slog.Int("sounds", loaded))
	return loaded
}

func (l *Library) preloadFile(path string) error {
	streamer, format, err := decodeFile(path)
	if err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return &DecodeError{Path: path, Err: err}
	}

	l.mu.Lock()
	l.cache[path] = &predecoded{buffer: buffer, format: format}
	l.mu.Unlock()
	return nil
}

func (l *Library) cached(path string) (*predecoded, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	audio, ok := l.cache[path]
	return audio, ok
}
