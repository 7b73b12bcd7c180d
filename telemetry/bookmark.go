package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkMotionBurst BookmarkType = "motion_burst"
	BookmarkSceneStill  BookmarkType = "scene_still"
	BookmarkSignalLost  BookmarkType = "signal_lost"
	BookmarkSignalBack  BookmarkType = "signal_back"
	BookmarkResetWave   BookmarkType = "reset_wave"
)

// Thresholds for the detectors.
const (
	burstMinTriggers  = 10
	stillMinPrevious  = 5
	resetWaveMinCount = 5
	lostSkipFraction  = 0.5
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int64
	Description string
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a run from window stats.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	signalLost bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkMotionBurst(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkSceneStill(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkResetWave(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Signal loss is edge-triggered and needs no history
	if b := bd.checkSignal(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// previous returns the most recently added window.
func (bd *BookmarkDetector) previous() WindowStats {
	idx := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[idx]
}

func (bd *BookmarkDetector) average(get func(WindowStats) int) float64 {
	history := bd.getHistory()
	if len(history) == 0 {
		return 0
	}
	sum := 0
	for _, h := range history {
		sum += get(h)
	}
	return float64(sum) / float64(len(history))
}

func (bd *BookmarkDetector) checkMotionBurst(stats WindowStats) *Bookmark {
	avg := bd.average(func(w WindowStats) int { return w.MotionTriggers })
	if stats.MotionTriggers < burstMinTriggers || float64(stats.MotionTriggers) <= 2*avg {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkMotionBurst,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d motion triggers, rolling average %.1f", stats.MotionTriggers, avg),
	}
}

func (bd *BookmarkDetector) checkSceneStill(stats WindowStats) *Bookmark {
	prev := bd.previous()
	if stats.MotionTriggers != 0 || prev.MotionTriggers < stillMinPrevious {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSceneStill,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No motion after %d triggers in the previous window", prev.MotionTriggers),
	}
}

func (bd *BookmarkDetector) checkResetWave(stats WindowStats) *Bookmark {
	avg := bd.average(func(w WindowStats) int { return w.Resets })
	if stats.Resets < resetWaveMinCount || float64(stats.Resets) <= 2*avg {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkResetWave,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%d tiles returned home, rolling average %.1f", stats.Resets, avg),
	}
}

func (bd *BookmarkDetector) checkSignal(stats WindowStats) *Bookmark {
	if stats.Frames == 0 {
		return nil
	}
	lost := float64(stats.SkippedFrames) > lostSkipFraction*float64(stats.Frames)

	switch {
	case lost && !bd.signalLost:
		bd.signalLost = true
		return &Bookmark{
			Type:        BookmarkSignalLost,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d of %d frames skipped", stats.SkippedFrames, stats.Frames),
		}
	case !lost && bd.signalLost:
		bd.signalLost = false
		return &Bookmark{
			Type:        BookmarkSignalBack,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Capture recovered, %d of %d frames skipped", stats.SkippedFrames, stats.Frames),
		}
	}
	return nil
}
