// Package receipttext builds fixed-width plain-text blocks for printable
// receipts. All padding is rune-aware so Cyrillic labels line up the same way
// as ASCII ones.
package receipttext

import (
	"strings"
	"unicode/utf8"
)

// DefaultWidth is the line width used when a caller passes a non-positive one.
const DefaultWidth = 40

// Document accumulates receipt lines bound to a fixed character width.
// Lines wider than the nominal width are kept as-is: overflow is tolerated,
// never truncated.
type Document struct {
	width int
	lines []string
}

// NewDocument creates a new document with the given character width.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Document{width: width}
}

// Width returns the document's line width.
func (d *Document) Width() int {
	return d.width
}

// Line appends a raw line without any padding.
func (d *Document) Line(s string) *Document {
	d.lines = append(d.lines, s)
	return d
}

// Center appends s centered within the document width. When the padding does
// not split evenly the extra column follows the same side selection as
// Python's str.center, which the original receipt layout was defined with.
func (d *Document) Center(s string) *Document {
	marg := d.width - utf8.RuneCountInString(s)
	if marg <= 0 {
		return d.Line(s)
	}
	left := marg/2 + (marg & d.width & 1)
	return d.Line(strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left))
}

// Left appends s left-justified (padded with trailing spaces) to the width.
func (d *Document) Left(s string) *Document {
	return d.Line(padRight(s, d.width))
}

// KeyValue appends a totals-style row: key left-justified to fill the line,
// a single space, then the value. The combined row is exactly the document
// width unless the key itself does not fit.
func (d *Document) KeyValue(key, value string) *Document {
	keyWidth := d.width - utf8.RuneCountInString(value) - 1
	return d.Line(padRight(key, keyWidth) + " " + value)
}

// Columns appends a row with left justified into width-rightWidth columns and
// right right-justified into the remaining rightWidth columns.
func (d *Document) Columns(left, right string, rightWidth int) *Document {
	return d.Line(padRight(left, d.width-rightWidth) + padLeft(right, rightWidth))
}

// Separator appends a full-width row of the given character.
func (d *Document) Separator(ch rune) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

// String joins the accumulated lines with newlines.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

func padRight(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
