package slideshow

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

// audioSampleRate is the sample rate of the process-wide audio context.
const audioSampleRate = 44100

// Texture is an image that decodes in the background. Until it is ready,
// objects drawing it render nothing and hit testing falls back to the
// bounding box.
type Texture struct {
	path   string
	src    atomic.Pointer[image.RGBA]
	failed atomic.Bool

	img *ebiten.Image // created on the render goroutine
}

// NewTextureFromImage returns a Texture that is ready immediately.
func NewTextureFromImage(img image.Image) *Texture {
	t := &Texture{path: "<memory>"}
	t.src.Store(toRGBA(img))
	return t
}

// Path returns the asset path the texture was requested with.
func (t *Texture) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Ready reports whether the texture has decoded successfully.
func (t *Texture) Ready() bool {
	return t != nil && t.src.Load() != nil
}

// Failed reports whether decoding failed.
func (t *Texture) Failed() bool {
	return t != nil && t.failed.Load()
}

// Size returns the decoded pixel size, or (0, 0) when not ready.
func (t *Texture) Size() (w, h int) {
	if !t.Ready() {
		return 0, 0
	}
	b := t.src.Load().Bounds()
	return b.Dx(), b.Dy()
}

// Aspect returns width/height, or 1 when the size is unknown.
func (t *Texture) Aspect() float64 {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// Image returns the GPU image, creating it on first use. Must be called from
// the render goroutine. Returns nil when the texture is not ready.
func (t *Texture) Image() *ebiten.Image {
	if !t.Ready() {
		return nil
	}
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src.Load())
	}
	return t.img
}

// alphaAt samples the alpha channel at normalized coordinates (u, v) in
// [0, 1]. The decoded CPU copy is preferred; the GPU image is only read as a
// fallback and any failure reading it yields ErrPixelSample.
func (t *Texture) alphaAt(u, v float64) (a uint8, err error) {
	if src := t.src.Load(); src != nil {
		b := src.Bounds()
		x := b.Min.X + clampIndex(u, b.Dx())
		y := b.Min.Y + clampIndex(v, b.Dy())
		return src.RGBAAt(x, y).A, nil
	}
	if t.img == nil {
		return 0, ErrPixelSample
	}
	defer func() {
		if r := recover(); r != nil {
			a, err = 0, fmt.Errorf("%w: %v", ErrPixelSample, r)
		}
	}()
	b := t.img.Bounds()
	c := color.NRGBAModel.Convert(t.img.At(b.Min.X+clampIndex(u, b.Dx()), b.Min.Y+clampIndex(v, b.Dy()))).(color.NRGBA)
	return c.A, nil
}

func clampIndex(f float64, n int) int {
	i := int(f * float64(n))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// Sound is an MP3 clip that loads in the background. Play is a no-op until
// the clip is ready.
type Sound struct {
	path   string
	data   atomic.Pointer[[]byte]
	failed atomic.Bool
	logger *slog.Logger

	mu     sync.Mutex
	player *audio.Player
}

// Ready reports whether the clip bytes have loaded.
func (s *Sound) Ready() bool {
	return s != nil && s.data.Load() != nil
}

// Play rewinds and starts the clip. Errors are logged, never returned.
func (s *Sound) Play() {
	if !s.Ready() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		stream, err := mp3.DecodeF32(bytes.NewReader(*s.data.Load()))
		if err != nil {
			s.logger.Warn("sound decode failed", "path", s.path, "err", err)
			s.failed.Store(true)
			s.data.Store(nil)
			return
		}
		p, err := sharedAudioContext().NewPlayerF32(stream)
		if err != nil {
			s.logger.Warn("sound player failed", "path", s.path, "err", err)
			return
		}
		s.player = p
	}
	if err := s.player.Rewind(); err != nil {
		s.logger.Warn("sound rewind failed", "path", s.path, "err", err)
	}
	s.player.Play()
}

// Stop pauses the clip and rewinds it to the start. No-op if it never played.
func (s *Sound) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return
	}
	s.player.Pause()
	if err := s.player.Rewind(); err != nil {
		s.logger.Warn("sound rewind failed", "path", s.path, "err", err)
	}
}

// Playing reports whether the clip is currently audible.
func (s *Sound) Playing() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player != nil && s.player.IsPlaying()
}

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

// sharedAudioContext returns the process-wide audio context. Ebitengine
// allows exactly one.
func sharedAudioContext() *audio.Context {
	audioOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioCtx = ctx
			return
		}
		audioCtx = audio.NewContext(audioSampleRate)
	})
	return audioCtx
}

// Assets loads and caches textures and sounds from a filesystem. Each path
// is fetched once; concurrent requests share the same handle.
type Assets struct {
	fsys   fs.FS
	logger *slog.Logger

	mu       sync.Mutex
	textures map[string]*Texture
	sounds   map[string]*Sound
	wg       sync.WaitGroup

	requested atomic.Int32
	settled   atomic.Int32
}

// NewAssets creates an Assets rooted at fsys. A nil logger uses slog.Default.
func NewAssets(fsys fs.FS, logger *slog.Logger) *Assets {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assets{
		fsys:     fsys,
		logger:   logger,
		textures: make(map[string]*Texture),
		sounds:   make(map[string]*Sound),
	}
}

// Texture returns the texture at path, starting a background decode on the
// first request. A nil *Assets returns a texture that never becomes ready.
func (a *Assets) Texture(path string) *Texture {
	if a == nil {
		return &Texture{path: path}
	}
	a.mu.Lock()
	if t, ok := a.textures[path]; ok {
		a.mu.Unlock()
		return t
	}
	t := &Texture{path: path}
	a.textures[path] = t
	a.mu.Unlock()

	a.requested.Add(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.settled.Add(1)
		img, err := a.decodeImage(path)
		if err != nil {
			t.failed.Store(true)
			a.logger.Warn("texture load failed", "path", path, "err", err)
			return
		}
		t.src.Store(img)
	}()
	return t
}

func (a *Assets) decodeImage(path string) (*image.RGBA, error) {
	if a.fsys == nil {
		return nil, fs.ErrNotExist
	}
	f, err := a.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toRGBA(img), nil
}

// Sound returns the sound at path, starting a background read on the first
// request. An empty path returns nil.
func (a *Assets) Sound(path string) *Sound {
	if path == "" {
		return nil
	}
	if a == nil {
		return &Sound{path: path, logger: slog.Default()}
	}
	a.mu.Lock()
	if s, ok := a.sounds[path]; ok {
		a.mu.Unlock()
		return s
	}
	s := &Sound{path: path, logger: a.logger}
	a.sounds[path] = s
	a.mu.Unlock()

	a.requested.Add(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.settled.Add(1)
		data, err := a.readAll(path)
		if err != nil {
			s.failed.Store(true)
			a.logger.Warn("sound load failed", "path", path, "err", err)
			return
		}
		s.data.Store(&data)
	}()
	return s
}

func (a *Assets) readAll(path string) ([]byte, error) {
	if a.fsys == nil {
		return nil, fs.ErrNotExist
	}
	f, err := a.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	return data, nil
}

// Progress reports how many requested assets have finished loading,
// successfully or not, out of the total requested so far.
func (a *Assets) Progress() (settled, requested int) {
	if a == nil {
		return 0, 0
	}
	return int(a.settled.Load()), int(a.requested.Load())
}

// Wait blocks until every asset requested so far has settled.
func (a *Assets) Wait() {
	if a != nil {
		a.wg.Wait()
	}
}
