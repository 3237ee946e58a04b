package internal

import (
	"os"
	"sort"
)

// Summary is the final tally of a run.
type Summary struct {
	Staged           int
	Copied           int
	Duplicates       int
	FailedCopy       int
	FailedProcessing int
	Deleted          int
	Pruned           int
}

// Failed is the combined failure count reported to the user.
func (s Summary) Failed() int { return s.FailedCopy + s.FailedProcessing }

// Coordinator drives a run: classify every staged image in order and, when
// deletion was requested, remove placed originals and prune emptied source
// directories afterwards.
type Coordinator struct {
	Classifier *Classifier
	Delete     bool
	DryRun     bool
	Log        *Logger
	Session    *RunSession
}

// Process classifies every staged file and returns the run summary. Deletion
// and pruning happen strictly after all classification completes: eligibility
// depends on the final outcome of every image.
func (c *Coordinator) Process(st *Staging) Summary {
	sum := Summary{Staged: len(st.Files)}

	var placed []string
	for i, src := range st.Files {
		c.Log.Printf("[%d/%d] %s", i+1, len(st.Files), src)
		switch c.Classifier.Classify(src) {
		case OutcomeCopied:
			sum.Copied++
			placed = append(placed, src)
		case OutcomeFailedCopy:
			sum.FailedCopy++
		case OutcomeFailedProcessing:
			sum.FailedProcessing++
		}
	}
	sum.Duplicates = c.Classifier.Duplicates

	if c.Delete && !c.DryRun {
		// Best-effort cleanup: removal failures are swallowed, never reported
		// as run failures.
		for _, src := range placed {
			if err := os.Remove(src); err == nil {
				sum.Deleted++
				c.Session.LogDeleted(src)
			}
		}
		sum.Pruned = pruneDirs(st.Dirs)
	}

	c.Session.LogRunEnd(sum)
	return sum
}

// pruneDirs removes now-empty directories, deepest first. os.Remove refuses a
// non-empty directory, which is exactly the "leave it alone" signal.
func pruneDirs(dirs []string) int {
	sorted := append([]string(nil), dirs...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	pruned := 0
	for _, d := range sorted {
		if err := os.Remove(d); err == nil {
			pruned++
		}
	}
	return pruned
}
