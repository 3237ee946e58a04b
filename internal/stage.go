package internal

import (
	"os"
	"path/filepath"
	"strings"
)

// RefuseReason explains why a path was rejected during staging.
type RefuseReason string

const (
	RefuseFilter     RefuseReason = "filter"     // extension not in the accepted set
	RefuseUnreadable RefuseReason = "unreadable" // not a readable regular file
)

// Refusal records a path rejected during staging.
type Refusal struct {
	Path   string
	Reason RefuseReason
}

// Staging is the partition produced by Stage: files to classify, directories
// discovered by recursion (prune candidates), and refused paths.
type Staging struct {
	Files   []string
	Dirs    []string
	Refused []Refusal
}

type workItem struct {
	path string
	top  bool
}

// Stage walks the input paths depth-first and partitions everything it finds.
// Read-only: nothing on disk is modified. Children are visited in
// directory-listing order, so repeated runs over an unchanged tree stage the
// same files in the same order.
func Stage(inputs []string, exts []string, log *Logger) *Staging {
	st := &Staging{}

	// Explicit work list instead of recursion: deep trees must not grow the
	// call stack.
	stack := make([]workItem, 0, len(inputs))
	for i := len(inputs) - 1; i >= 0; i-- {
		stack = append(stack, workItem{path: inputs[i], top: true})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := os.Stat(item.path)
		if err != nil {
			st.refuse(item.path, RefuseUnreadable, log)
			continue
		}

		if info.IsDir() {
			// Top-level arguments are never prune candidates.
			if !item.top {
				st.Dirs = append(st.Dirs, item.path)
			}
			entries, err := os.ReadDir(item.path)
			if err != nil {
				st.refuse(item.path, RefuseUnreadable, log)
				continue
			}
			for i := len(entries) - 1; i >= 0; i-- {
				stack = append(stack, workItem{path: filepath.Join(item.path, entries[i].Name())})
			}
			continue
		}

		if !info.Mode().IsRegular() {
			st.refuse(item.path, RefuseUnreadable, log)
			continue
		}

		f, err := os.Open(item.path)
		if err != nil {
			st.refuse(item.path, RefuseUnreadable, log)
			continue
		}
		f.Close()

		if !extAccepted(item.path, exts) {
			st.refuse(item.path, RefuseFilter, log)
			continue
		}
		st.Files = append(st.Files, item.path)
	}

	return st
}

func (st *Staging) refuse(path string, reason RefuseReason, log *Logger) {
	st.Refused = append(st.Refused, Refusal{Path: path, Reason: reason})
	log.Printf("refused (%s): %s", reason, path)
}

func extAccepted(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}
