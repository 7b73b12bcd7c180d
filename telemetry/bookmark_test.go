package telemetry

import (
	"testing"

	"github.com/pthm-cable/boxroll/config"
)

func init() {
	config.MustInit("")
}

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_MotionBurst(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int64(i * 300), Frames: 300, MotionTriggers: 4})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 1500, Frames: 300, MotionTriggers: 20})
	if !hasBookmark(bookmarks, BookmarkMotionBurst) {
		t.Errorf("expected motion_burst bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_SmallBurstIgnored(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Frames: 300, MotionTriggers: 1})

	bookmarks := bd.Check(WindowStats{Frames: 300, MotionTriggers: burstMinTriggers - 1})
	if hasBookmark(bookmarks, BookmarkMotionBurst) {
		t.Error("burst below the minimum trigger count should not bookmark")
	}
}

func TestBookmarkDetector_SceneStill(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bd.Check(WindowStats{Frames: 300, MotionTriggers: 12})

	bookmarks := bd.Check(WindowStats{Frames: 300, MotionTriggers: 0})
	if !hasBookmark(bookmarks, BookmarkSceneStill) {
		t.Errorf("expected scene_still bookmark, got %v", bookmarks)
	}

	// Still again: previous window was already quiet
	bookmarks = bd.Check(WindowStats{Frames: 300, MotionTriggers: 0})
	if hasBookmark(bookmarks, BookmarkSceneStill) {
		t.Error("scene_still should fire once per quiet spell")
	}
}

func TestBookmarkDetector_ResetWave(t *testing.T) {
	bd := NewBookmarkDetector(10)
	for i := 0; i < 3; i++ {
		bd.Check(WindowStats{Frames: 300, Resets: 1})
	}

	bookmarks := bd.Check(WindowStats{Frames: 300, Resets: 9})
	if !hasBookmark(bookmarks, BookmarkResetWave) {
		t.Errorf("expected reset_wave bookmark, got %v", bookmarks)
	}
}

func TestBookmarkDetector_SignalLostAndBack(t *testing.T) {
	bd := NewBookmarkDetector(10)

	tests := []struct {
		name    string
		skipped int
		want    BookmarkType
	}{
		{"healthy", 0, ""},
		{"lost", 200, BookmarkSignalLost},
		{"still lost", 300, ""},
		{"back", 10, BookmarkSignalBack},
		{"healthy again", 0, ""},
	}

	for _, tt := range tests {
		bookmarks := bd.Check(WindowStats{Frames: 300, SkippedFrames: tt.skipped})
		if tt.want == "" {
			if hasBookmark(bookmarks, BookmarkSignalLost) || hasBookmark(bookmarks, BookmarkSignalBack) {
				t.Errorf("%s: unexpected signal bookmark %v", tt.name, bookmarks)
			}
			continue
		}
		if !hasBookmark(bookmarks, tt.want) {
			t.Errorf("%s: expected %s, got %v", tt.name, tt.want, bookmarks)
		}
	}
}

func TestBookmarkDetector_FirstWindowQuiet(t *testing.T) {
	bd := NewBookmarkDetector(10)
	bookmarks := bd.Check(WindowStats{Frames: 300, MotionTriggers: 50, Resets: 20})
	if len(bookmarks) != 0 {
		t.Errorf("first window has no history to compare, got %v", bookmarks)
	}
}
