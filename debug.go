package slideshow

import "time"

// frameStats holds per-frame timing. Only populated in debug mode.
type frameStats struct {
	sortTime    time.Duration
	renderTime  time.Duration
	objectCount int
	drawnCount  int
}

// debugLog logs timing and object counts for one frame.
func (c *Compositor) debugLog(stats frameStats) {
	if !c.debug || c.logger == nil {
		return
	}
	c.logger.Debug("frame",
		"sort", stats.sortTime,
		"render", stats.renderTime,
		"total", stats.sortTime+stats.renderTime,
		"objects", stats.objectCount,
		"drawn", stats.drawnCount,
	)
}

// debugMaxObjectCount is the object count above which a slide is probably
// leaking objects between activations.
const debugMaxObjectCount = 1000

func (c *Compositor) debugCheckObjectCount() {
	if c.logger != nil && len(c.objects) > debugMaxObjectCount {
		c.logger.Warn("object count exceeds threshold",
			"objects", len(c.objects), "threshold", debugMaxObjectCount)
	}
}
