package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Charset forces a decoding instead of detecting one.
type Charset string

const (
	CharsetAuto        Charset = ""
	CharsetUTF8        Charset = "utf-8"
	CharsetUTF16       Charset = "utf-16"
	CharsetWindows1252 Charset = "windows-1252"
)

// ParseCharset maps a user supplied name to a Charset. Unknown names fall
// back to detection.
func ParseCharset(name string) Charset {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return CharsetUTF8
	case "utf-16", "utf16":
		return CharsetUTF16
	case "windows-1252", "cp1252", "latin1", "iso-8859-1":
		return CharsetWindows1252
	}

	return CharsetAuto
}

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to UTF-8.
//
// Detection order:
//  1. Check for BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Validate if the content is valid UTF-8 and return as-is
//  3. BOM-less UTF-16, recognised by NUL bytes on alternating positions
//  4. Heuristic detection via chardet
//  5. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	return NewReader(r, CharsetAuto)
}

// NewReader decodes r to UTF-8 using cs, detecting when cs is CharsetAuto.
// A BOM is honoured whatever cs says.
func NewReader(r io.Reader, cs Charset) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	case bytes.HasPrefix(buf, bomUTF16LE):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(buf, bomUTF16BE):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	switch cs {
	case CharsetUTF8:
		return br, nil
	case CharsetWindows1252:
		return decode(br, charmap.Windows1252), nil
	case CharsetUTF16:
		if looksUTF16(buf, 1) {
			return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)), nil
		}

		if looksUTF16(buf, 0) || !utf8.Valid(buf) {
			return decode(br, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)), nil
		}

		// BOM-less text with no NUL pattern is UTF-8 that was labelled UTF-16.
		return br, nil
	}

	if utf8.Valid(buf) && !looksUTF16(buf, 0) && !looksUTF16(buf, 1) {
		return br, nil
	}

	if looksUTF16(buf, 1) {
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)), nil
	}

	if looksUTF16(buf, 0) {
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)), nil
	}

	detector := chardet.NewTextDetector()

	result, detectErr := detector.DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return br, nil
		case "ISO-8859-1", "windows-1252":
			return decode(br, charmap.Windows1252), nil
		case "ISO-8859-9":
			return decode(br, charmap.ISO8859_9), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

func decode(r io.Reader, enc textenc.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}

// looksUTF16 reports whether most bytes at positions of the given parity are
// NUL, as they are for ASCII text encoded in UTF-16. Parity 1 means little
// endian.
func looksUTF16(buf []byte, parity int) bool {
	if len(buf) < 4 {
		return false
	}

	var nul, total int

	for i := parity; i < len(buf); i += 2 {
		total++

		if buf[i] == 0 {
			nul++
		}
	}

	return nul*10 >= total*7
}
