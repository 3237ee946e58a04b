package internal

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// mapReader resolves capture dates by basename; unknown names report missing
// metadata.
type mapReader map[string]DateResult

func (m mapReader) CaptureDate(path string) DateResult {
	if r, ok := m[filepath.Base(path)]; ok {
		return r
	}
	return DateResult{Status: DateMissing}
}

func countFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func newTestClassifier(root string, reader DateReader) *Classifier {
	return &Classifier{
		Resolver: &Resolver{Root: root, Pattern: "%Y/%m/%d-%H%M%S", Reader: reader},
		Ledger:   NewLedger(),
	}
}

func TestClassify_CopiesAndVerifies(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "a.jpg")
	writeFile(t, src, "content a")

	c := newTestClassifier(destDir, mapReader{"a.jpg": {Time: captureTime, Status: DateFound}})

	if got := c.Classify(src); got != OutcomeCopied {
		t.Fatalf("Classify = %v, want succeeded_copy", got)
	}

	dest := filepath.Join(destDir, "2021", "06", "15-102030.jpg")
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Destination not written: %v", err)
	}
	if string(data) != "content a" {
		t.Errorf("Destination content = %q", data)
	}
}

func TestClassify_DuplicateContentCopiedOnce(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	first := filepath.Join(srcDir, "a.jpg")
	second := filepath.Join(srcDir, "b.jpg")
	writeFile(t, first, "same bytes")
	writeFile(t, second, "same bytes")

	c := newTestClassifier(destDir, mapReader{
		"a.jpg": {Time: captureTime, Status: DateFound},
		"b.jpg": {Time: captureTime, Status: DateFound},
	})

	if got := c.Classify(first); got != OutcomeCopied {
		t.Fatalf("First classify = %v", got)
	}
	if got := c.Classify(second); got != OutcomeCopied {
		t.Fatalf("Duplicate classify = %v, want succeeded_copy", got)
	}
	if c.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", c.Duplicates)
	}
	if n := countFiles(t, destDir); n != 1 {
		t.Errorf("Expected exactly one physical copy, found %d", n)
	}
}

func TestClassify_DedupDisabled(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	first := filepath.Join(srcDir, "a.jpg")
	second := filepath.Join(srcDir, "b.jpg")
	writeFile(t, first, "same bytes")
	writeFile(t, second, "same bytes")

	c := newTestClassifier(destDir, mapReader{
		"a.jpg": {Time: captureTime, Status: DateFound},
		"b.jpg": {Time: captureTime, Status: DateFound},
	})
	c.Ledger = nil

	c.Classify(first)
	c.Classify(second)

	// Without the ledger both copies land, the second under a suffixed name.
	if n := countFiles(t, destDir); n != 2 {
		t.Errorf("Expected two physical copies, found %d", n)
	}
	if _, err := os.Stat(filepath.Join(destDir, "2021", "06", "15-102030_001.jpg")); err != nil {
		t.Errorf("Suffixed copy missing: %v", err)
	}
}

func TestClassify_DifferentContentSameSecond(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	first := filepath.Join(srcDir, "a.jpg")
	second := filepath.Join(srcDir, "b.jpg")
	writeFile(t, first, "one")
	writeFile(t, second, "two")

	c := newTestClassifier(destDir, mapReader{
		"a.jpg": {Time: captureTime, Status: DateFound},
		"b.jpg": {Time: captureTime, Status: DateFound},
	})

	c.Classify(first)
	c.Classify(second)

	base := filepath.Join(destDir, "2021", "06", "15-102030.jpg")
	suffixed := filepath.Join(destDir, "2021", "06", "15-102030_001.jpg")
	for _, p := range []string{base, suffixed} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("Missing %s: %v", p, err)
		}
	}
}

func TestClassify_NoMetadataNeverCopied(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "nodate.jpg")
	writeFile(t, src, "whatever")

	c := newTestClassifier(destDir, mapReader{})

	if got := c.Classify(src); got != OutcomeFailedProcessing {
		t.Fatalf("Classify = %v, want failed_processing", got)
	}
	if n := countFiles(t, destDir); n != 0 {
		t.Errorf("Destination should be untouched, found %d files", n)
	}
}

func TestClassify_DryRunWritesNothing(t *testing.T) {
	srcDir, destDir := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "a.jpg")
	writeFile(t, src, "content")

	c := newTestClassifier(destDir, mapReader{"a.jpg": {Time: captureTime, Status: DateFound}})
	c.DryRun = true

	if got := c.Classify(src); got != OutcomeCopied {
		t.Fatalf("Classify = %v, want succeeded_copy", got)
	}
	if n := countFiles(t, destDir); n != 0 {
		t.Errorf("Dry run wrote %d files", n)
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeCopied.String() != "succeeded_copy" ||
		OutcomeFailedCopy.String() != "failed_copy" ||
		OutcomeFailedProcessing.String() != "failed_processing" {
		t.Errorf("Unexpected outcome names: %v %v %v",
			OutcomeCopied, OutcomeFailedCopy, OutcomeFailedProcessing)
	}
}
