package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/require"
)

var testFormat = beep.Format{SampleRate: 22050, NumChannels: 2, Precision: 2}

func writeWAV(t *testing.T, path string, samples int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Encode(f, beep.Silence(samples), testFormat))
}

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	root := t.TempDir()
	writeWAV(t, filepath.Join(root, "song_a.wav"), 1000)
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.wav"), []byte("not a riff file"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "folder.wav"), 0o755))

	return New(root, map[string]string{
		"1234": "song_a.wav",
		"5555": "song_b.mp3",
		"6666": "broken.wav",
		"7777": "notes.txt",
		"8888": "folder.wav",
		" 42 ": "song_a.wav",
	}), root
}

func TestResolve(t *testing.T) {
	lib, root := newTestLibrary(t)

	path, err := lib.Resolve("1234")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "song_a.wav"), path)

	path, err = lib.Resolve("  1234\n")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "song_a.wav"), path)

	_, err = lib.Resolve("42")
	require.NoError(t, err)

	_, err = lib.Resolve("9999")
	require.ErrorIs(t, err, ErrNotMapped)

	_, err = lib.Resolve("5555")
	require.ErrorIs(t, err, ErrMissingFile)

	_, err = lib.Resolve("8888")
	require.ErrorIs(t, err, ErrMissingFile)
}

func TestOpenDecodesWAV(t *testing.T) {
	lib, root := newTestLibrary(t)

	s, format, err := lib.Open(filepath.Join(root, "song_a.wav"))
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, testFormat.SampleRate, format.SampleRate)
	require.Equal(t, 2, format.NumChannels)
	require.Equal(t, 1000, s.Len())
}

func TestOpenFailuresAreDecodeErrors(t *testing.T) {
	lib, root := newTestLibrary(t)

	for _, name := range []string{"broken.wav", "notes.txt", "absent.wav"} {
		_, _, err := lib.Open(filepath.Join(root, name))
		require.ErrorIs(t, err, ErrDecode, name)

		var decodeErr *DecodeError
		require.True(t, errors.As(err, &decodeErr), name)
		require.Equal(t, filepath.Join(root, name), decodeErr.Path)
	}
}

func TestPreloadServesFromMemory(t *testing.T) {
	lib, root := newTestLibrary(t)

	require.Equal(t, 1, lib.Preload())

	path := filepath.Join(root, "song_a.wav")
	require.NoError(t, os.WriteFile(path, []byte("overwritten"), 0o644))

	s, format, err := lib.Open(path)
	require.NoError(t, err)
	require.Equal(t, testFormat.SampleRate, format.SampleRate)
	require.Equal(t, 1000, s.Len())
	require.NoError(t, s.Close())
}

func TestEntriesSorted(t *testing.T) {
	lib, root := newTestLibrary(t)

	entries := lib.Entries()
	require.Len(t, entries, lib.Len())

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	require.Equal(t, []string{"1234", "42", "5555", "6666", "7777", "8888"}, ids)
	require.True(t, entries[0].Exists)
	require.False(t, entries[2].Exists)
	require.Equal(t, filepath.Join(root, "song_b.mp3"), entries[2].Path)
}

func TestMappingIsCopied(t *testing.T) {
	tags := map[string]string{"1": "a.wav"}
	lib := New(t.TempDir(), tags)
	tags["2"] = "b.wav"

	_, err := lib.Resolve("2")
	require.ErrorIs(t, err, ErrNotMapped)
}
