package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsInitialized(t *testing.T) {
	doc := NewDocument(32)
	assert.Equal(t, []byte{esc, '@'}, doc.Bytes())
}

func TestDocumentKeyValuePadding(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total", "477.000d")

	line := string(doc.Bytes()[2:])
	assert.Equal(t, "Total       477.000d\n", line)
}

func TestDocumentItemLine(t *testing.T) {
	doc := NewDocument(24)
	doc.ItemLine(2, "BlueGuard", "900.000d")

	line := string(doc.Bytes()[2:])
	assert.Equal(t, "2x BlueGuard    900.000d\n", line)
	assert.Len(t, line, 25)
}

func TestDocumentOverflowKeepsOneSpace(t *testing.T) {
	doc := NewDocument(10)
	doc.KeyValue("Very long label", "99")

	assert.Equal(t, "Very long label 99\n", string(doc.Bytes()[2:]))
}

func TestDocumentSeparatorMatchesWidth(t *testing.T) {
	doc := NewDocument(16)
	doc.Separator('-')

	assert.Equal(t, "----------------\n", string(doc.Bytes()[2:]))
}

func TestDocumentPartialCut(t *testing.T) {
	doc := NewDocument(32)
	doc.PartialCut()

	assert.Equal(t, []byte{gs, 'V', 0x01}, doc.Bytes()[2:])
}
