package charset

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gogs/chardet"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// ToUTF8 detects the charset of a subtitle file and converts it to UTF-8.
// A leading byte order mark is removed.
func ToUTF8(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}

	best, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return nil, fmt.Errorf("charset: detect: %w", err)
	}
	if best.Charset == "UTF-8" {
		return data, nil
	}

	encoding, err := ianaindex.MIB.Encoding(best.Charset)
	if err != nil {
		return nil, fmt.Errorf("charset: %s: %w", best.Charset, err)
	}
	if encoding == nil {
		return nil, fmt.Errorf("charset: %s: no decoder", best.Charset)
	}
	transformed, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), encoding.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("charset: decode %s: %w", best.Charset, err)
	}
	return bytes.TrimPrefix(transformed, utf8BOM), nil
}
