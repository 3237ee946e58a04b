package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Outcome is the terminal bucket of one staged image. Every image lands in
// exactly one.
type Outcome int

const (
	OutcomeCopied Outcome = iota
	OutcomeFailedCopy
	OutcomeFailedProcessing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCopied:
		return "succeeded_copy"
	case OutcomeFailedCopy:
		return "failed_copy"
	default:
		return "failed_processing"
	}
}

// ErrContentMismatch flags a copy whose destination bytes differ from the source.
var ErrContentMismatch = errors.New("copied file does not match source")

// Classifier places a single image: resolve the destination, skip
// known-duplicate content, copy, verify. Called sequentially, one image at a
// time.
type Classifier struct {
	Resolver *Resolver
	Ledger   *Ledger // nil disables deduplication
	DryRun   bool
	Log      *Logger
	Session  *RunSession

	// Duplicates counts images skipped because their content was already
	// placed this run. They still land in the succeeded bucket.
	Duplicates int
}

// Classify runs the pipeline for one staged image and returns its outcome.
// Every failure is contained here; none aborts the run.
func (c *Classifier) Classify(src string) Outcome {
	dest, err := c.Resolver.Resolve(src)
	if err != nil {
		c.fail(src, err)
		return OutcomeFailedProcessing
	}

	if c.Ledger != nil {
		hash, err := FileHash(src)
		if err != nil {
			c.fail(src, err)
			return OutcomeFailedProcessing
		}
		if c.Ledger.Contains(hash) {
			// Identical content already placed this run. Counts as success
			// so the original stays eligible for deletion.
			c.Duplicates++
			c.Log.Printf("duplicate: %s", src)
			c.Session.LogSkippedDuplicate(src, hash)
			return OutcomeCopied
		}
		c.Ledger.Add(hash)
	}

	if c.DryRun {
		c.Log.Printf("[dry-run] would copy %s -> %s", src, dest)
		return OutcomeCopied
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		c.fail(src, err)
		return OutcomeFailedCopy
	}
	if err := CopyFile(src, dest); err != nil {
		c.fail(src, err)
		return OutcomeFailedCopy
	}
	same, err := SameContent(src, dest)
	if err != nil {
		c.fail(src, err)
		return OutcomeFailedCopy
	}
	if !same {
		c.fail(src, fmt.Errorf("%w: %s", ErrContentMismatch, dest))
		return OutcomeFailedCopy
	}

	c.Log.Printf("copied %s -> %s", src, dest)
	c.Session.LogCopied(src, dest)
	return OutcomeCopied
}

func (c *Classifier) fail(src string, err error) {
	pe := CategorizeError(src, err)
	c.Log.Printf("error: %v", pe)
	c.Session.LogError(src, pe)
}
