package scenes

import (
	"math/rand/v2"

	"github.com/nhimhouse/slideshow"
)

func envRand(env *slideshow.Env) *rand.Rand {
	if env == nil {
		return nil
	}
	return env.Rand
}

// scatter places n slots across [start, start+total) and jitters each one
// by up to jitter of its slot width either way. It returns slot centers.
func scatter(env *slideshow.Env, n int, start, total, jitter float64) []float64 {
	if n <= 0 {
		return nil
	}
	slot := total / float64(n)
	xs := make([]float64, n)
	for i := range xs {
		j := (env.Float64() - 0.5) * slot * jitter * 2
		xs[i] = start + float64(i)*slot + slot/2 + j
	}
	return xs
}

// lineUp spreads n points evenly over [lo+margin, hi-margin] and jitters
// each by at most maxJitter or 30% of the spacing, whichever is smaller.
func lineUp(env *slideshow.Env, n int, lo, hi, margin, maxJitter float64) []float64 {
	if n <= 0 {
		return nil
	}
	usable := hi - lo - 2*margin
	if n == 1 {
		return []float64{lo + margin + usable/2}
	}
	spacing := usable / float64(n-1)
	jitter := min(spacing*0.3, maxJitter)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + margin + float64(i)*spacing + (env.Float64()-0.5)*jitter*2
	}
	return xs
}

// worldSpan returns the horizontal world range the camera can reach on a
// viewport of width w with pan limit offset.
func worldSpan(w, offset float64) (lo, hi float64) {
	return -offset, w + offset
}
