package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/go-strftime"
)

// DefaultPattern lays files out as year/month/yearmonthday-hourminsec.
const DefaultPattern = "%Y/%m/%Y%m%d-%H%M%S"

// ErrNoCaptureDate marks an image whose capture timestamp could not be read.
var ErrNoCaptureDate = errors.New("no capture date in metadata")

// Resolver computes destination paths under Root from capture timestamps.
type Resolver struct {
	Root    string
	Pattern string
	Reader  DateReader
}

// Resolve returns the destination path for src: the capture timestamp rendered
// through the strftime pattern, plus the lower-cased source extension. When the
// computed path already names something on disk, a numeric suffix (_001, _002,
// ...) is inserted before the extension until a free path is found. The
// existence probe is check-then-use; acceptable because the pipeline is
// strictly sequential.
func (r *Resolver) Resolve(src string) (string, error) {
	res := r.Reader.CaptureDate(src)
	if res.Status != DateFound {
		if res.Err != nil {
			return "", fmt.Errorf("%w: %v", ErrNoCaptureDate, res.Err)
		}
		return "", ErrNoCaptureDate
	}

	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	ext := strings.ToLower(filepath.Ext(src))
	dest := filepath.Join(r.Root, strftime.Format(pattern, res.Time)+ext)

	base := strings.TrimSuffix(dest, ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest, nil
		}
		dest = fmt.Sprintf("%s_%03d%s", base, n, ext)
	}
}
