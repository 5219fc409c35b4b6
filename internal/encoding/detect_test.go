package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/bucket/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Portuguese characters should pass through unchanged.
	input := "Descrição;Montante\nCafé;12,50\nOperação;-3,00\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Latin1(t *testing.T) {
	// Windows-1252 encoded "Descrição;Montante\n".
	// In Windows-1252: ç = 0xE7, ã = 0xE3
	latin1Bytes := []byte{
		'D', 'e', 's', 'c', 'r', 'i', 0xE7, 0xE3, 'o', ';',
		'M', 'o', 'n', 't', 'a', 'n', 't', 'e', '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Descrição;Montante\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Descrição;Montante\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Descrição;Montante\n", string(got))
}

func utf16(s string, littleEndian bool) []byte {
	var out []byte

	for _, r := range s {
		if littleEndian {
			out = append(out, byte(r), byte(r>>8))
		} else {
			out = append(out, byte(r>>8), byte(r))
		}
	}

	return out
}

func TestNewUTF8Reader_UTF16WithoutBOM(t *testing.T) {
	input := "Date,Title,Amount\n2024-01-02,Café,3.50\n"

	for _, le := range []bool{true, false} {
		r, err := encoding.NewUTF8Reader(bytes.NewReader(utf16(input, le)))
		require.NoError(t, err)

		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, input, string(got), "little endian: %v", le)
	}
}

func TestNewUTF8Reader_UTF16LEBOM(t *testing.T) {
	input := append([]byte{0xFF, 0xFE}, utf16("Título\n", true)...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Título\n", string(got))
}

func TestNewReader_ForcedCharset(t *testing.T) {
	tests := []struct {
		name  string
		cs    encoding.Charset
		input []byte
		want  string
	}{
		{name: "Windows1252", cs: encoding.ParseCharset("latin1"), input: []byte{'C', 'a', 'f', 0xE9}, want: "Café"},
		{name: "UTF16BigEndian", cs: encoding.ParseCharset("UTF-16"), input: utf16("Ivy", false), want: "Ivy"},
		{name: "UTF8", cs: encoding.ParseCharset("utf8"), input: []byte("plain"), want: "plain"},
		{name: "UTF16LabelOnUTF8", cs: encoding.CharsetUTF16, input: []byte("Date,Title\n"), want: "Date,Title\n"},
		{name: "UTF16LittleEndian", cs: encoding.CharsetUTF16, input: utf16("Ivy", true), want: "Ivy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewReader(bytes.NewReader(tt.input), tt.cs)
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestParseCharset_Unknown(t *testing.T) {
	assert.Equal(t, encoding.CharsetAuto, encoding.ParseCharset("ebcdic"))
}
