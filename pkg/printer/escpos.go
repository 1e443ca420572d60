package printer

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for SetAlign.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes for SetFontSize.
const (
	FontNormal byte = 0x00
	FontDouble byte = 0x11
)

// Document accumulates an ESC/POS byte stream. Methods chain and
// layout helpers pad to the configured character width.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts an initialized document. Width is the paper width
// in characters: 32 for 58mm rolls, 48 for 80mm.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{esc, '@'})
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lf)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{esc, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{gs, '!', size})
	return d
}

// Text writes one line and advances the paper.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints char repeated across the full paper width.
func (d *Document) Separator(char byte) *Document {
	return d.Text(strings.Repeat(string(char), d.width))
}

// KeyValue prints a label flush left and its value flush right,
// the usual layout for totals lines.
func (d *Document) KeyValue(key, value string) *Document {
	return d.Text(key + pad(d.width-len(key)-len(value)) + value)
}

// ItemLine prints "Nx name" with the line total flush right.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx %s", qty, name)
	return d.Text(prefix + pad(d.width-len(prefix)-len(total)) + total)
}

// PartialCut cuts the paper leaving a small attachment point.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

// Bytes returns the stream to hand to a Printer.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func pad(n int) string {
	if n < 1 {
		n = 1
	}
	return strings.Repeat(" ", n)
}
