package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// stubReader returns a fixed result for every path.
type stubReader struct {
	t      time.Time
	status DateStatus
	err    error
}

func (s stubReader) CaptureDate(string) DateResult {
	return DateResult{Time: s.t, Status: s.status, Err: s.err}
}

var captureTime = time.Date(2021, 6, 15, 10, 20, 30, 0, time.UTC)

func TestResolve_Pattern(t *testing.T) {
	root := t.TempDir()
	r := &Resolver{
		Root:    root,
		Pattern: "%Y/%m/%d-%H%M%S",
		Reader:  stubReader{t: captureTime},
	}

	dest, err := r.Resolve("/input/photo.JPG")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := filepath.Join(root, "2021", "06", "15-102030.jpg")
	if dest != want {
		t.Errorf("Resolve = %s, want %s", dest, want)
	}
}

func TestResolve_DefaultPattern(t *testing.T) {
	root := t.TempDir()
	r := &Resolver{Root: root, Reader: stubReader{t: captureTime}}

	dest, err := r.Resolve("/input/photo.jpg")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := filepath.Join(root, "2021", "06", "20210615-102030.jpg")
	if dest != want {
		t.Errorf("Resolve = %s, want %s", dest, want)
	}
}

func TestResolve_CollisionSuffix(t *testing.T) {
	root := t.TempDir()
	r := &Resolver{
		Root:    root,
		Pattern: "%Y/%m/%d-%H%M%S",
		Reader:  stubReader{t: captureTime},
	}

	taken := filepath.Join(root, "2021", "06", "15-102030.jpg")
	writeFile(t, taken, "already here")

	dest, err := r.Resolve("/input/other.jpg")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := filepath.Join(root, "2021", "06", "15-102030_001.jpg")
	if dest != want {
		t.Errorf("Resolve = %s, want %s", dest, want)
	}

	// Next collision increments the suffix.
	writeFile(t, want, "also here")
	dest, err = r.Resolve("/input/third.jpg")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want = filepath.Join(root, "2021", "06", "15-102030_002.jpg")
	if dest != want {
		t.Errorf("Resolve = %s, want %s", dest, want)
	}
}

func TestResolve_NoCaptureDate(t *testing.T) {
	r := &Resolver{Root: t.TempDir(), Reader: stubReader{status: DateMissing}}

	if _, err := r.Resolve("/input/photo.jpg"); !errors.Is(err, ErrNoCaptureDate) {
		t.Errorf("Expected ErrNoCaptureDate, got %v", err)
	}

	r.Reader = stubReader{status: DateUnreadable, err: os.ErrInvalid}
	if _, err := r.Resolve("/input/photo.jpg"); !errors.Is(err, ErrNoCaptureDate) {
		t.Errorf("Expected ErrNoCaptureDate for unreadable metadata, got %v", err)
	}
}
