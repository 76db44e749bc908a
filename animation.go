package slideshow

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Drive it
// incrementally with Update(dt) or absolutely with Seek(t); both write the
// current values through to the fields.
//
// There is no global animation manager. Owners drive their own groups.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Tween returns a group animating field from `from` to `to` over duration
// seconds. The field is set to `from` immediately.
func Tween(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	return g.With(field, from, to, duration, fn)
}

// With adds another field to the group. Groups hold at most 4 fields;
// further calls are ignored.
func (g *TweenGroup) With(field *float64, from, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	if g.count == len(g.tweens) {
		return g
	}
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
	*field = from
	g.Done = false
	return g
}

// Update advances all tweens by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Seek moves every tween to t seconds from its start.
func (g *TweenGroup) Seek(t float32) {
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Set(t)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}
