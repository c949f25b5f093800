package audio

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// TTSService fetches pronunciation clips for (text, language) pairs and
// caches them on disk so repeated requests never hit the network twice.
type TTSService struct {
	audioDir string
	client   *http.Client
}

// NewTTSService creates a TTS service caching clips under audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// ClipPath returns the on-disk path of the MP3 clip for the given text
// and language code, generating and caching it on first use.
func (s *TTSService) ClipPath(ctx context.Context, text, language string) (string, error) {
	if language == "" {
		language = "ko"
	}

	filename := clipFilename(text, language)
	path := filepath.Join(s.audioDir, filename)

	// Cached clip from an earlier request
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	if err := s.fetchClip(ctx, text, language, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return path, nil
}

// fetchClip uses Google Translate's text-to-speech endpoint, which is
// free and needs no API key
func (s *TTSService) fetchClip(ctx context.Context, text, language, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Required by the endpoint
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		// Don't leave a truncated clip in the cache
		os.Remove(outputPath)
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// CleanupCache removes cached clips older than maxAge
func (s *TTSService) CleanupCache(maxAge time.Duration) error {
	entries, err := os.ReadDir(s.audioDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read audio directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".mp3" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(s.audioDir, entry.Name()))
		}
	}

	return nil
}

// clipFilename hashes text and language into a stable cache filename.
// Korean text can't go into a filename directly.
func clipFilename(text, language string) string {
	sum := sha1.Sum([]byte(language + ":" + text))
	return fmt.Sprintf("tts_%s_%s.mp3", language, hex.EncodeToString(sum[:8]))
}
