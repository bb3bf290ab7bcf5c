package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/vyaparx/internal/encoding"
)

func readAll(t *testing.T, in []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "नाम,कीमत\nचीनी,45\nBasmati Rice,\"₹1,250\"\n"

	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Café,120\n" with é = 0xE9.
	latin1 := []byte{'C', 'a', 'f', 0xE9, ',', '1', '2', '0', '\n'}

	assert.Equal(t, "Café,120\n", readAll(t, latin1))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name,Price\n")...)

	assert.Equal(t, "Name,Price\n", readAll(t, input))
}

func TestNewUTF8Reader_UTF16LEWithBOM(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	input, err := encoder.Bytes([]byte("नाम\tकीमत\nचीनी\t45\n"))
	require.NoError(t, err)

	assert.Equal(t, "नाम\tकीमत\nचीनी\t45\n", readAll(t, input))
}

func TestNewUTF8Reader_LongUTF8(t *testing.T) {
	// Devanagari runes are three bytes, so the sniff window ends mid-rune.
	input := "Items\n" + strings.Repeat("चीनी,45\n", 600)

	assert.Equal(t, input, readAll(t, []byte(input)))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		want    string
		decoder bool
	}{
		{"Plain ASCII", []byte("Name,Price\n"), "UTF-8", false},
		{"UTF-8 BOM", []byte{0xEF, 0xBB, 0xBF, 'a'}, "UTF-8", false},
		{"UTF-16LE BOM", []byte{0xFF, 0xFE, 'a', 0}, "UTF-16LE", true},
		{"UTF-16BE BOM", []byte{0xFE, 0xFF, 0, 'a'}, "UTF-16BE", true},
		{"Empty", nil, "UTF-8", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dec := encoding.Detect(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.decoder, dec != nil)
		})
	}
}
