package scenes

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/nhimhouse/slideshow"
)

// Livestream timeline.
const (
	GiftAt        = 130 * time.Second
	giftSoundLag  = 8 * time.Second
	giftEffectFor = 12 * time.Second
	boostFor      = 5 * time.Second
	reactionGap   = 300 * time.Millisecond
	reactionsFor  = 10 * time.Second

	maxComments      = 12
	startViewers     = 35
	minViewers       = 30
	maxViewers       = 500
	viewerTick       = time.Second
	giftSoundPath    = "audio/gift-sound.mp3"
	mobileBreakpoint = 600.0
)

// Comment is one line of the livestream chat.
type Comment struct {
	User string
	Text string
}

type timedComment struct {
	at time.Duration
	Comment
}

var chatScript = []timedComment{
	{500 * time.Millisecond, Comment{"Pun", "Hi mum"}},
	{600 * time.Millisecond, Comment{"qn", "Hê lô mom"}},
	{1500 * time.Millisecond, Comment{"Ong Chăm Chỉ", "Hê lô nhím"}},
	{3 * time.Second, Comment{"Pun", "@qn hí iuuu"}},
	{4 * time.Second, Comment{"qn", "@Pun hí iuu"}},
	{13 * time.Second, Comment{"qn", "Đã tặng x10 Bông hồng"}},
	{25 * time.Second, Comment{"qn", "Quà huyền bí bay quá tr lun kìa mum"}},
}

var giftReactions = []Comment{
	{"chịTom", "Adu vuýp!"},
	{"Dòi", "Auuu"},
	{"Lez", "Adu adu"},
	{"Louis", "Troi oiiiiii"},
	{"Pun", "Adduuuu"},
	{"Pun", "U ni vơ"},
	{"qn", "Aduuuu uniiiii"},
	{"Vand Dung", "Giàu dữ tr"},
	{"Xuân Thànhh", "Aduuuu, uni"},
}

var (
	streamBackdrop = slideshow.MustGradient(0, "#1a1a2e", 0.5, "#16213e", 1, "#0f0f1a")
	liveRed        = color.NRGBA{255, 0, 0, 255}
	chatPanel      = color.NRGBA{0, 0, 0, 178}
	chatBorder     = slideshow.MustHex("#444444")
	chatHeader     = slideshow.MustHex("#222222")
	chatUser       = slideshow.MustHex("#aaaaaa")
	chatRow        = color.NRGBA{255, 255, 255, 26}
	reactionGold   = color.NRGBA{255, 215, 0, 255}
)

// clip is the part of *slideshow.Sound the livestream drives.
type clip interface {
	Play()
	Stop()
}

// Livestream simulates Mom's live stream: a scripted chat, a drifting viewer
// count and, at GiftAt, a gift effect followed by a burst of reactions. The
// timeline runs on a Schedule read from the stage clock. The camera is
// disabled.
type Livestream struct {
	base
	sched *slideshow.Schedule

	comments  []Comment // newest first
	viewers   int
	boostEnd  time.Duration
	gifting   bool
	giftStart time.Duration
	reacting  bool
	giftSound clip
}

var _ slideshow.Scene = (*Livestream)(nil)

// NewLivestream returns the livestream slide.
func NewLivestream() *Livestream {
	return &Livestream{base: base{
		info: slideshow.SceneInfo{
			Title: "Livestream",
			Body:  []string{"Mom Nhím livestream!"},
		},
	}}
}

func (s *Livestream) Setup(st *slideshow.Stage) error {
	s.begin(st)
	s.comments = s.comments[:0]
	s.viewers = startViewers
	s.boostEnd = 0
	s.gifting, s.reacting = false, false
	s.giftSound = st.Assets().Sound(giftSoundPath)

	s.sched = slideshow.NewSchedule(st.Env().Clock)
	for _, c := range chatScript {
		s.sched.At(c.at, func() { s.push(c.Comment) })
	}
	s.sched.At(GiftAt, s.startGift)
	s.sched.At(viewerTick, s.tickViewers)
	s.sched.Start()
	return nil
}

func (s *Livestream) push(c Comment) {
	s.comments = append([]Comment{c}, s.comments...)
	if len(s.comments) > maxComments {
		s.comments = s.comments[:maxComments]
	}
}

func (s *Livestream) startGift() {
	s.gifting = true
	s.giftStart = s.sched.Elapsed()
	s.boostEnd = s.giftStart + boostFor
	s.sched.After(giftSoundLag, func() {
		if s.giftSound != nil {
			s.giftSound.Play()
		}
	})
	s.sched.After(giftEffectFor, s.endGift)
}

func (s *Livestream) endGift() {
	s.gifting = false
	s.reacting = true
	for i, r := range giftReactions {
		s.sched.After(time.Duration(i)*reactionGap, func() { s.push(r) })
	}
	s.sched.After(reactionsFor, func() { s.reacting = false })
}

// advance fires everything due on the stage clock: chat lines, gift stages
// and viewer ticks.
func (s *Livestream) advance() {
	s.sched.Update()
}

// tickViewers moves the viewer count once and schedules the next tick.
func (s *Livestream) tickViewers() {
	s.sched.After(viewerTick, s.tickViewers)
	env := s.st.Env()
	if s.sched.Elapsed() < s.boostEnd {
		s.viewers += 50 + env.IntN(51)
		return
	}
	s.viewers += env.IntN(9) - 4
	if s.viewers < minViewers {
		s.viewers = minViewers
	}
	if s.viewers > maxViewers {
		s.viewers = minViewers + env.IntN(11)
	}
}

func (s *Livestream) Render(dst *ebiten.Image, t time.Duration) {
	s.advance()
	st := s.st
	w, h := st.Size()
	geo := st.ScreenGeoM()
	sc := s.scale()
	fs := sc
	if w < mobileBreakpoint {
		fs = math.Max(sc*2, 1)
	}

	if s.gifting {
		s.drawGift(dst, t)
		return
	}
	streamBackdrop.FillVertical(dst, 0, 0, w, h, geo)
	s.drawBadge(dst, t, fs)
	s.drawChat(dst, t, fs)
}

// drawGift stands in for the gift video: a pulsing golden burst.
func (s *Livestream) drawGift(dst *ebiten.Image, t time.Duration) {
	st := s.st
	w, h := st.Size()
	geo := st.ScreenGeoM()
	slideshow.FillRect(dst, 0, 0, w, h, geo, color.Black)
	p := (t - s.giftStart).Seconds()
	r := math.Min(w, h) * (0.2 + 0.05*math.Sin(p*4))
	for i := range 3 {
		phase := math.Mod(p+float64(i)/3, 1)
		slideshow.Glow(dst, w/2, h/2, r*(1+phase*2), 1-phase, geo, reactionGold)
	}
	slideshow.DrawText(dst, "Universe", w/2, h/2, slideshow.TextStyle{
		Font: slideshow.BoldFont(), Size: 48 * s.scale(), Color: color.White,
		Align: text.AlignCenter, VAlign: text.AlignCenter,
	}, geo)
}

func (s *Livestream) drawBadge(dst *ebiten.Image, t time.Duration, fs float64) {
	geo := s.st.ScreenGeoM()
	x, y := 20*fs, 20*fs
	pulse := math.Sin(float64(t.Milliseconds())/300)*0.3 + 0.7
	slideshow.Glow(dst, x+27.5*fs, y+10*fs, 30*fs, 0.5*pulse, geo, liveRed)
	slideshow.FillPath(dst, slideshow.RoundedRectPath(x, y, 55*fs, 20*fs, 4*fs), geo, slideshow.WithAlpha(liveRed, pulse))
	slideshow.DrawText(dst, "LIVE", x+27.5*fs, y+10*fs, slideshow.TextStyle{
		Font: slideshow.BoldFont(), Size: 11 * fs, Color: color.White,
		Align: text.AlignCenter, VAlign: text.AlignCenter,
	}, geo)
	slideshow.DrawText(dst, fmt.Sprintf("● %d", s.viewers), x, y+40*fs, slideshow.TextStyle{
		Font: slideshow.RegularFont(), Size: 10 * fs, Color: color.White,
		VAlign: text.AlignEnd,
	}, geo)
}

func (s *Livestream) drawChat(dst *ebiten.Image, t time.Duration, fs float64) {
	st := s.st
	w, h := st.Size()
	geo := st.ScreenGeoM()
	boxW, boxX := 0.3, 0.65
	if w < mobileBreakpoint {
		boxW, boxX = 0.4, 0.58
	}
	x, y := w*boxX, h*0.15
	bw, bh := w*boxW, h*0.7

	panel := slideshow.RoundedRectPath(x, y, bw, bh, 10*fs)
	slideshow.FillPath(dst, panel, geo, chatPanel)
	slideshow.StrokePath(dst, panel, 2, geo, chatBorder)
	slideshow.FillRect(dst, x, y, bw, 35*fs, geo, chatHeader)
	slideshow.DrawText(dst, "Chat", x+12*fs, y+22*fs, slideshow.TextStyle{
		Font: slideshow.BoldFont(), Size: 13 * fs, Color: color.White, VAlign: text.AlignEnd,
	}, geo)

	highlight := 1.0
	if s.reacting {
		highlight = math.Sin(float64(t.Milliseconds())/200)*0.3 + 0.7
	}
	rowH := 36 * fs
	top := y + 45*fs
	for i, c := range s.comments {
		ry := top + float64(i)*rowH
		if ry >= y+bh-15*fs {
			break
		}
		slideshow.DrawText(dst, c.User, x+12*fs, ry, slideshow.TextStyle{
			Font: slideshow.BoldFont(), Size: 9 * fs, Color: chatUser, VAlign: text.AlignEnd,
		}, geo)
		fill := color.Color(chatRow)
		if s.reacting && i < 8 {
			fill = slideshow.WithAlpha(reactionGold, 0.3*highlight)
		}
		slideshow.FillPath(dst, slideshow.RoundedRectPath(x+12*fs, ry+3*fs, bw-24*fs, 24*fs, 4*fs), geo, fill)
		slideshow.DrawText(dst, c.Text, x+18*fs, ry+18*fs, slideshow.TextStyle{
			Font: slideshow.RegularFont(), Size: 10 * fs, Color: color.White, VAlign: text.AlignEnd,
		}, geo)
	}
}

func (s *Livestream) OnResize(w, h float64) {
	s.resize(w, h)
}

func (s *Livestream) Teardown() {
	if s.sched != nil {
		s.sched.Clear()
	}
	if s.giftSound != nil {
		s.giftSound.Stop()
		s.giftSound = nil
	}
	s.comments = nil
	s.gifting, s.reacting = false, false
	s.base.Teardown()
}

// Comments returns the chat, newest first.
func (s *Livestream) Comments() []Comment {
	out := make([]Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Viewers returns the displayed viewer count.
func (s *Livestream) Viewers() int { return s.viewers }

// Gifting reports whether the gift effect is showing.
func (s *Livestream) Gifting() bool { return s.gifting }

// Reacting reports whether the post-gift reactions are highlighted.
func (s *Livestream) Reacting() bool { return s.reacting }
