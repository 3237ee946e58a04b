package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Report is a read-only inventory of a staging pass.
type Report struct {
	Staged     int
	Dirs       int
	Refused    int
	TotalBytes uint64
	ByExt      map[string]int
	DupGroups  int
	DupFiles   int
}

// BuildReport sizes and tallies the staged files. With duplicates enabled,
// every file is hashed through the same ledger the organize pipeline uses.
func BuildReport(st *Staging, duplicates bool) *Report {
	r := &Report{
		Staged:  len(st.Files),
		Dirs:    len(st.Dirs),
		Refused: len(st.Refused),
		ByExt:   make(map[string]int),
	}

	seen := NewLedger()
	grouped := NewLedger()
	for _, f := range st.Files {
		r.ByExt[strings.ToLower(filepath.Ext(f))]++
		if info, err := os.Stat(f); err == nil {
			r.TotalBytes += uint64(info.Size())
		}
		if !duplicates {
			continue
		}
		hash, err := FileHash(f)
		if err != nil {
			continue
		}
		if seen.Contains(hash) {
			r.DupFiles++
			if !grouped.Contains(hash) {
				grouped.Add(hash)
				r.DupGroups++
			}
		} else {
			seen.Add(hash)
		}
	}
	return r
}

// Render writes the human-readable report.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "Staged:      %s files (%s)\n", humanize.Comma(int64(r.Staged)), humanize.Bytes(r.TotalBytes))
	fmt.Fprintf(w, "Directories: %d\n", r.Dirs)
	fmt.Fprintf(w, "Refused:     %d\n", r.Refused)

	if len(r.ByExt) > 0 {
		fmt.Fprintln(w, "By extension:")
		exts := make([]string, 0, len(r.ByExt))
		for e := range r.ByExt {
			exts = append(exts, e)
		}
		sort.Strings(exts)
		for _, e := range exts {
			fmt.Fprintf(w, "  %-8s %d\n", e, r.ByExt[e])
		}
	}

	if r.DupGroups > 0 {
		fmt.Fprintf(w, "Duplicates:  %d files in %d groups\n", r.DupFiles, r.DupGroups)
	}
}
