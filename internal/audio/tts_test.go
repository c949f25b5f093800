package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClipFilenameStable(t *testing.T) {
	first := clipFilename("안녕하세요", "ko")
	second := clipFilename("안녕하세요", "ko")
	if first != second {
		t.Errorf("same input produced different filenames: %v / %v", first, second)
	}

	other := clipFilename("안녕하세요", "en")
	if first == other {
		t.Error("different languages should produce different filenames")
	}
	if filepath.Ext(first) != ".mp3" {
		t.Errorf("filename %v should end in .mp3", first)
	}
}

func TestClipPathUsesCache(t *testing.T) {
	dir := t.TempDir()
	service := NewTTSService(dir)

	// Pre-seed the cache; a hit must not touch the network
	cached := filepath.Join(dir, clipFilename("사과", "ko"))
	if err := os.WriteFile(cached, []byte("mp3-bytes"), 0644); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}

	path, err := service.ClipPath(context.Background(), "사과", "ko")
	if err != nil {
		t.Fatalf("ClipPath() error = %v", err)
	}
	if path != cached {
		t.Errorf("path = %v, want cached %v", path, cached)
	}
}

func TestCleanupCacheRemovesOldClips(t *testing.T) {
	dir := t.TempDir()
	service := NewTTSService(dir)

	old := filepath.Join(dir, "tts_ko_old.mp3")
	if err := os.WriteFile(old, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write clip: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, stale, stale); err != nil {
		t.Fatalf("failed to age clip: %v", err)
	}

	fresh := filepath.Join(dir, "tts_ko_fresh.mp3")
	if err := os.WriteFile(fresh, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write clip: %v", err)
	}

	if err := service.CleanupCache(24 * time.Hour); err != nil {
		t.Fatalf("CleanupCache() error = %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old clip should have been removed")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh clip should have been kept")
	}
}
