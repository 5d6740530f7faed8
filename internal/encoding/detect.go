// Package encoding turns text files of unknown encoding into UTF-8 streams.
//
// Ledger files and bank statements are often edited or produced on Windows machines, so readers
// in this module never assume the bytes on disk are UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how many bytes are inspected before choosing a decoder.
const sniffLen = 4096

var boms = []struct {
	mark    []byte
	decoder func() *textenc.Decoder
}{
	{[]byte{0xEF, 0xBB, 0xBF}, nil},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder},
}

// charsets maps chardet results to decoders. UTF-8 needs none.
var charsets = map[string]*charmap.Charmap{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
	"ISO-8859-15":  charmap.ISO8859_15,
}

// NewUTF8Reader returns a reader that yields the content of r as UTF-8.
//
// A byte order mark wins; otherwise valid UTF-8 passes through, then chardet guesses among the
// single-byte charsets above, and Windows-1252 is the last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.mark) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.decoder()), nil
	}

	if utf8.Valid(trimPartialRune(head)) {
		return br, nil
	}

	return transform.NewReader(br, detectCharmap(head).NewDecoder()), nil
}

func detectCharmap(sample []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		if cm, ok := charsets[result.Charset]; ok {
			return cm
		}
	}

	return charmap.Windows1252
}

// trimPartialRune drops an incomplete multi-byte sequence cut off at the end of the sniffed sample.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if utf8.RuneStart(b[len(b)-i]) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}

			break
		}
	}

	return b
}
