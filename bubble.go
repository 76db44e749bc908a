package slideshow

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Chat bubble and name label metrics at scale 1.
const (
	bubbleFontSize   = 14
	bubblePadding    = 8
	bubbleMaxWidth   = 200
	bubbleLineHeight = 1.3
	bubbleRadius     = 8
	bubbleTail       = 8
	bubbleGap        = 15
	bubbleStroke     = 2

	labelFontSize = 12
	labelPadding  = 4
	labelRadius   = 3
	labelGap      = 5 // unscaled, like the label's world offset

	// nameLabelHeight is the label's height; bubbles above a label start
	// this much higher.
	nameLabelHeight = 20
)

var (
	bubbleFill        = color.NRGBA{255, 255, 255, 242}
	bubbleInk         = MustHex("#333")
	labelFill         = color.NRGBA{0, 0, 0, 178}
	giftGlowColor     = color.NRGBA{255, 215, 0, 255}
	buildingGlowColor = color.NRGBA{255, 255, 200, 255}
)

// drawChatBubble draws the active chat message in a rounded bubble whose
// tail points at (X, bottomY). bottomY is the top of whatever the bubble
// sits above.
func (o *Object) drawChatBubble(f *Frame, bottomY float64) {
	msg := o.ChatMessage()
	if msg == "" {
		return
	}
	s := f.Scale
	font := RegularFont()
	size := bubbleFontSize * s
	pad := bubblePadding * s
	lines := WrapWords(msg, bubbleMaxWidth*s, func(l string) float64 {
		return font.Advance(l, size)
	})
	if len(lines) == 0 {
		return
	}
	textW := 0.0
	for _, l := range lines {
		textW = max(textW, font.Advance(l, size))
	}
	lineH := size * bubbleLineHeight
	w := textW + pad*2
	h := float64(len(lines))*lineH + pad*2
	tip := bottomY - bubbleGap*s
	left := o.X - w/2
	top := tip - bubbleTail*s - h

	body := RoundedRectPath(left, top, w, h, bubbleRadius*s)
	tail := PolygonPath(
		Vec2{o.X - bubbleTail*s, top + h},
		Vec2{o.X, top + h + bubbleTail*s},
		Vec2{o.X + bubbleTail*s, top + h},
	)
	FillPath(f.Target, body, f.View, bubbleFill)
	StrokePath(f.Target, body, bubbleStroke*s, f.View, bubbleInk)
	FillPath(f.Target, tail, f.View, bubbleFill)
	StrokePath(f.Target, tail, bubbleStroke*s, f.View, bubbleInk)

	style := TextStyle{
		Font:   font,
		Size:   size,
		Color:  bubbleInk,
		Align:  text.AlignCenter,
		VAlign: text.AlignEnd,
	}
	for i, l := range lines {
		DrawText(f.Target, l, o.X, top+pad+float64(i+1)*lineH-4*s, style, f.View)
	}
}

// drawNameLabel draws the object's name on a dark pill just above its head.
func (o *Object) drawNameLabel(f *Frame) {
	if o.Name == "" {
		return
	}
	s := f.Scale
	font := BoldFont()
	size := labelFontSize * s
	pad := labelPadding * s
	textW := font.Advance(o.Name, size)
	baseY := o.Y - o.Size - labelGap

	FillPath(f.Target, RoundedRectPath(o.X-textW/2-pad, baseY-18*s, textW+pad*2, nameLabelHeight*s, labelRadius*s), f.View, labelFill)
	DrawText(f.Target, o.Name, o.X, baseY, TextStyle{
		Font:   font,
		Size:   size,
		Color:  color.White,
		Align:  text.AlignCenter,
		VAlign: text.AlignEnd,
	}, f.View)
}
