package video

import (
	"path/filepath"
	"testing"

	"econoshorts/types"
)

func TestSidecarRoundTrip(t *testing.T) {
	scenes := []types.Scene{
		{Index: 0, Text: "금리가 올랐습니다", DurationSeconds: 5, VisualTag: "rates"},
		{Index: 1, Text: "시장이 반응합니다", DurationSeconds: 5, VisualTag: "market"},
	}
	path := filepath.Join(t.TempDir(), "short.json")

	if err := WriteSidecar(path, "금리 인상", "금리가 올랐습니다. 시장이 반응합니다.", scenes); err != nil {
		t.Fatalf("WriteSidecar: %v", err)
	}
	got, err := ReadSidecar(path)
	if err != nil {
		t.Fatalf("ReadSidecar: %v", err)
	}
	if got.Topic != "금리 인상" {
		t.Errorf("topic %q", got.Topic)
	}
	if len(got.Scenes) != 2 || got.Scenes[1].VisualTag != "market" {
		t.Errorf("scenes not preserved: %+v", got.Scenes)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestReadSidecarMissing(t *testing.T) {
	if _, err := ReadSidecar(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing sidecar")
	}
}
