package internal

import (
	"fmt"
	"os"
	"time"

	exiftool "github.com/barasher/go-exiftool"
	"github.com/rwcarlsen/goexif/exif"
)

// exifTimeLayout is the timestamp format EXIF stores dates in.
const exifTimeLayout = "2006:01:02 15:04:05"

// DateStatus tells how capture-date extraction ended. Missing and unreadable
// both fail classification, but the manifest records which one it was.
type DateStatus int

const (
	DateFound DateStatus = iota
	DateMissing
	DateUnreadable
)

func (s DateStatus) String() string {
	switch s {
	case DateFound:
		return "found"
	case DateMissing:
		return "missing"
	default:
		return "unreadable"
	}
}

// DateResult is the outcome of reading a capture date. Time is only valid when
// Status is DateFound; Err carries the read/decode error for unreadable files.
type DateResult struct {
	Time   time.Time
	Status DateStatus
	Err    error
}

// DateReader extracts the capture timestamp embedded in an image file.
type DateReader interface {
	CaptureDate(path string) DateResult
}

// ExifReader reads EXIF with the native goexif decoder. DateTimeOriginal is
// preferred; DateTime is the fallback.
type ExifReader struct{}

func (ExifReader) CaptureDate(path string) DateResult {
	f, err := os.Open(path)
	if err != nil {
		return DateResult{Status: DateUnreadable, Err: err}
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return DateResult{Status: DateUnreadable, Err: err}
	}

	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTime} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, err := time.Parse(exifTimeLayout, s)
		if err != nil {
			continue
		}
		return DateResult{Time: t, Status: DateFound}
	}
	return DateResult{Status: DateMissing}
}

// ExifToolReader shells out to a persistent exiftool process. Slower to start
// than the native decoder but reads containers goexif cannot. Close must be
// called when done.
type ExifToolReader struct {
	et *exiftool.Exiftool
}

func NewExifToolReader() (*ExifToolReader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("failed to start exiftool: %w", err)
	}
	return &ExifToolReader{et: et}, nil
}

func (r *ExifToolReader) CaptureDate(path string) DateResult {
	metas := r.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return DateResult{Status: DateUnreadable, Err: fmt.Errorf("exiftool returned no metadata for %s", path)}
	}
	m := metas[0]
	if m.Err != nil {
		return DateResult{Status: DateUnreadable, Err: m.Err}
	}
	for _, field := range []string{"DateTimeOriginal", "ModifyDate"} {
		s, err := m.GetString(field)
		if err != nil {
			continue
		}
		t, err := time.Parse(exifTimeLayout, s)
		if err != nil {
			continue
		}
		return DateResult{Time: t, Status: DateFound}
	}
	return DateResult{Status: DateMissing}
}

func (r *ExifToolReader) Close() error {
	return r.et.Close()
}
