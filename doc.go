// Package slideshow is a small slide engine for illustrated, interactive
// greeting cards on [Ebitengine].
//
// A card is a sequence of [Scene] values registered with a [Controller]. Only
// one scene is live at a time: switching tears down the outgoing scene (its
// render loop, every listener it registered and its objects) before the
// incoming scene's Setup runs.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and drives
// the controller as an [ebiten.Game]:
//
//	c := slideshow.NewRunController(cfg, assets)
//	c.Register(&slideshow.SceneFuncs{
//		Title:    "Hello",
//		SetupFn:  func(st *slideshow.Stage) error { return nil },
//		RenderFn: func(dst *ebiten.Image, t time.Duration) {},
//	})
//	slideshow.Run(c, cfg)
//
// # World and camera
//
// Scenes place objects in world coordinates. The [Camera] maps world to
// screen with a pan offset and a zoom about the viewport center, clamped to
// the limits the scene sets with [Camera.SetLimits]. Dragging pans, the wheel
// and two-finger pinch zoom about the pointer, and Home glides back to the
// origin.
//
// # Objects
//
// An [Object] is a character, tree, animal or building. Each draws a sprite
// anchored at its bottom center, shows a chat bubble when clicked and hit
// tests against the sprite's alpha. A [Compositor] sorts its objects by depth
// (their Y) for drawing and dispatches clicks front to back.
//
// # Time and randomness
//
// Everything time or chance dependent reads an [Env]. Tests build one with
// [NewTestEnv] and step a [ManualClock]; [Schedule] runs timed dialogue against
// the same clock.
//
// # Assets
//
// [Assets] loads textures and sounds in the background from any [fs.FS].
// Handles are returned at once and report Ready when decoded; a missing file
// is logged and its handle simply never becomes ready.
//
// # Testing
//
// The Inject* methods on [Stage] queue synthetic clicks, drags, wheel and key
// events. [LoadTestScript] reads a JSON list of such steps, with screenshots,
// and the run loop replays it frame by frame.
//
// [Ebitengine]: https://ebitengine.org
package slideshow
