// Command generate creates spoken placeholder sounds for mapped tags whose
// mp3 file does not exist yet.
package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode"

	"jukebox/config"
	"jukebox/library"

	"github.com/Duckduckgot/gtts"
	"github.com/Duckduckgot/gtts/handlers"
	"github.com/Duckduckgot/gtts/voices"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	speech := gtts.Speech{Folder: cfg.Sounds.Path, Language: voices.English, Handler: &handlers.MPlayer{}}

	generated := 0
	for _, entry := range library.New(cfg.Sounds.Path, cfg.Sounds.Tags).Entries() {
		if entry.Exists || strings.ToLower(filepath.Ext(entry.File)) != ".mp3" {
			continue
		}
		if filepath.Dir(entry.File) != "." {
			log.Printf("Skipping %s: only files directly in the sound directory are generated", entry.File)
			continue
		}

		name := strings.TrimSuffix(entry.File, filepath.Ext(entry.File))
		text, err := announcement(name)
		handleError(entry.File, err)
		_, err = speech.CreateSpeechFile(text, name)
		handleError(entry.File, err)

		log.Printf("Generated %s for tag %s", entry.Path, entry.ID)
		generated++
	}

	log.Printf("Generated %d placeholder sounds", generated)
}

func handleError(file string, err error) {
	if err != nil {
		panic(fmt.Sprintf("Error generating %s: %s", file, err.Error()))
	}
}

// announcement turns a file name such as "Chanson_d'été" into speakable
// ASCII text ("chanson dete")
func announcement(name string) (string, error) {
	// Decompose and remove diacritics (accents)
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
	)
	normalized, _, err := transform.String(t, name)
	if err != nil {
		return "", err
	}

	filtered := strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return -1
		case r == '_' || r == '-' || r == '.':
			return ' '
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r):
			return r
		}
		return -1
	}, normalized)

	text := strings.Join(strings.Fields(strings.ToLower(filtered)), " ")
	if text == "" {
		return "", fmt.Errorf("nothing to announce in %q", name)
	}
	return text, nil
}
