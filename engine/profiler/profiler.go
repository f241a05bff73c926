// Package profiler reports frame timing and memory statistics to the log at a fixed interval.
package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/glix/engine/logging"
	"github.com/loov/hrtime"
	"github.com/sirupsen/logrus"
)

// Stats summarizes the frames seen since the last report.
type Stats struct {
	Presented int
	Skipped   int
	AvgFrame  time.Duration
	MaxFrame  time.Duration
	FPS       float64
}

// Profiler tracks frame rate, frame time and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	presented      int
	skipped        int
	frameStart     time.Duration
	frameTotal     time.Duration
	frameMax       time.Duration
	lastTime       time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now func() time.Duration
	log *logrus.Entry
}

// NewProfiler creates a new Profiler.
// Update interval defaults to 1 second.
//
// Parameters:
//   - updateInterval: how often statistics are logged, or 0 for the default
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(updateInterval time.Duration) *Profiler {
	if updateInterval <= 0 {
		updateInterval = time.Second
	}
	p := &Profiler{
		updateInterval: updateInterval,
		now:            hrtime.Now,
		log:            logging.Component("profiler"),
	}
	p.lastTime = p.now()
	return p
}

// BeginFrame marks the start of a frame.
func (p *Profiler) BeginFrame() {
	p.frameStart = p.now()
}

// EndFrame records the end of a frame started with BeginFrame.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, average and max frame time, skipped frames, heap usage, allocation rate, GC count/pause times.
//
// Parameters:
//   - presented: false when the frame was skipped
//
// Returns:
//   - bool: true if stats were logged this frame, false otherwise
func (p *Profiler) EndFrame(presented bool) bool {
	current := p.now()
	frameTime := current - p.frameStart
	if presented {
		p.presented++
		p.frameTotal += frameTime
		if frameTime > p.frameMax {
			p.frameMax = frameTime
		}
	} else {
		p.skipped++
	}

	elapsed := current - p.lastTime
	if elapsed < p.updateInterval {
		return false
	}

	stats := Stats{
		Presented: p.presented,
		Skipped:   p.skipped,
		MaxFrame:  p.frameMax,
		FPS:       float64(p.presented) / elapsed.Seconds(),
	}
	if p.presented > 0 {
		stats.AvgFrame = p.frameTotal / time.Duration(p.presented)
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
			maxPauseUs = pause
		}
	}

	p.log.WithFields(logrus.Fields{
		"fps":          stats.FPS,
		"avg_frame":    stats.AvgFrame.String(),
		"max_frame":    stats.MaxFrame.String(),
		"skipped":      stats.Skipped,
		"heap_mb":      allocMB,
		"alloc_mb_s":   allocRateMB,
		"gc":           gcCount,
		"gc_max_pause": maxPauseUs,
	}).Info("frame stats")

	p.last = stats
	p.presented = 0
	p.skipped = 0
	p.frameTotal = 0
	p.frameMax = 0
	p.lastTime = current
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the statistics of the most recent report.
func (p *Profiler) Last() Stats {
	return p.last
}
