package extract

import (
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// readUTF8File returns the file content, failing with encoding.ErrInvalidUTF8
// at the first byte that is not valid UTF-8. A leading BOM is kept as U+FEFF.
func readUTF8File(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(transform.NewReader(f, encoding.UTF8Validator))
}
