// Package encoding normalises uploaded sheets to UTF-8. Spreadsheet exports
// from Indian billing tools arrive as UTF-8, UTF-16 (Excel "Unicode text")
// or a Windows code page.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffLen = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// byCharset maps chardet results to decoders. UTF-8 is handled before
// detection and never appears here.
var byCharset = map[string]encoding.Encoding{
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-15":  charmap.ISO8859_15,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// Detect reports the charset name of buf and the decoder to read it with.
// A nil decoder means buf is already UTF-8.
func Detect(buf []byte) (string, *encoding.Decoder) {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return "UTF-8", nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return "UTF-16LE", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case bytes.HasPrefix(buf, bomUTF16BE):
		return "UTF-16BE", unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case utf8.Valid(buf):
		return "UTF-8", nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(buf); err == nil {
		if result.Charset == "UTF-8" {
			return "UTF-8", nil
		}

		if enc, ok := byCharset[result.Charset]; ok {
			return result.Charset, enc.NewDecoder()
		}
	}

	return "windows-1252", charmap.Windows1252.NewDecoder()
}

// NewUTF8Reader returns a reader yielding r's content as UTF-8, with any
// UTF-8 byte order mark removed.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	// A multi-byte rune cut at the peek boundary must not fail validation.
	if len(buf) == sniffLen {
		buf = trimPartialRune(buf)
	}

	_, dec := Detect(buf)

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
	}

	if dec == nil {
		return br, nil
	}

	return transform.NewReader(br, dec), nil
}

func trimPartialRune(buf []byte) []byte {
	for i := 0; i < utf8.UTFMax && i < len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-1-i]) {
			if !utf8.FullRune(buf[len(buf)-1-i:]) {
				return buf[:len(buf)-1-i]
			}

			break
		}
	}

	return buf
}
