package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var errUnsupported = errors.New("unsupported format")

// Open decodes the sound at path. Preloaded sounds are served from memory.
// Every failure is a *DecodeError.
func (l *Library) Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if audio, ok := l.cached(path); ok {
		return audio.streamer(), audio.format, nil
	}

	streamer, format, err := decodeFile(path)
	if err != nil {
		return nil, beep.Format{}, &DecodeError{Path: path, Err: err}
	}
	return streamer, format, nil
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	default:
		err = fmt.Errorf("%w %q", errUnsupported, ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, err
	}
	if format.SampleRate <= 0 || format.NumChannels <= 0 {
		streamer.Close()
		return nil, beep.Format{}, fmt.Errorf("invalid format %+v", format)
	}

	return &fileStreamer{StreamSeekCloser: streamer, file: f}, format, nil
}

// fileStreamer closes the source file together with the decoder. Not every
// decoder closes its reader.
type fileStreamer struct {
	beep.StreamSeekCloser
	file *os.File
}

func (s *fileStreamer) Close() error {
	err := s.StreamSeekCloser.Close()
	if cerr := s.file.Close(); err == nil && !errors.Is(cerr, os.ErrClosed) {
		err = cerr
	}
	return err
}
