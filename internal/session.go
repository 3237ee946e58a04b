package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RunSession records one organizing run: a JSONL manifest of everything that
// happened, plus optional hardlinks of placed files for quick browsing.
// A nil *RunSession is valid and does nothing, so dry runs and tests can skip
// it.
type RunSession struct {
	ID  string // run ID (timestamp: 2025-01-15-103045)
	Dir string // full path to the run directory

	manifest      *os.File
	hardlinks     bool
	usedBasenames map[string]int
}

// ManifestEvent is one line of manifest.jsonl.
type ManifestEvent struct {
	Event  string `json:"event"`
	Ts     string `json:"ts"`
	Src    string `json:"src,omitempty"`
	Dest   string `json:"dest,omitempty"`
	Hash   string `json:"hash,omitempty"`
	Browse string `json:"browse,omitempty"`

	Error         string `json:"error,omitempty"`
	ErrorCategory string `json:"error_category,omitempty"`

	// run_start / run_end fields
	Sources          []string `json:"sources,omitempty"`
	Staged           int      `json:"staged,omitempty"`
	Copied           int      `json:"copied,omitempty"`
	Duplicates       int      `json:"duplicates,omitempty"`
	FailedCopy       int      `json:"failed_copy,omitempty"`
	FailedProcessing int      `json:"failed_processing,omitempty"`
	Deleted          int      `json:"deleted,omitempty"`
	Pruned           int      `json:"pruned,omitempty"`
}

// NewRunSession creates <root>/runs/<id>/manifest.jsonl for append-only writes.
func NewRunSession(root string, hardlinks bool) (*RunSession, error) {
	id := time.Now().Format("2006-01-02-150405")
	dir := filepath.Join(root, "runs", id)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}

	manifest, err := os.OpenFile(filepath.Join(dir, "manifest.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &RunSession{
		ID:            id,
		Dir:           dir,
		manifest:      manifest,
		hardlinks:     hardlinks,
		usedBasenames: make(map[string]int),
	}, nil
}

// LogRunStart writes the run_start event.
func (s *RunSession) LogRunStart(sources []string, staged int) {
	s.write(ManifestEvent{Event: "run_start", Sources: sources, Staged: staged})
}

// LogCopied logs a successful placement and, when enabled, hardlinks the
// placed file into the run directory.
func (s *RunSession) LogCopied(src, dest string) {
	if s == nil {
		return
	}
	ev := ManifestEvent{Event: "copied", Src: src, Dest: dest}
	if s.hardlinks {
		if name, err := s.link(dest); err == nil {
			ev.Browse = name
		}
	}
	s.write(ev)
}

// LogSkippedDuplicate logs an image whose content was already placed this run.
func (s *RunSession) LogSkippedDuplicate(src, hash string) {
	s.write(ManifestEvent{Event: "skipped_duplicate", Src: src, Hash: hash})
}

// LogDeleted logs the removal of a placed original.
func (s *RunSession) LogDeleted(src string) {
	s.write(ManifestEvent{Event: "deleted", Src: src})
}

// LogError logs a categorized per-image failure.
func (s *RunSession) LogError(src string, pe *ProcessError) {
	if pe == nil {
		return
	}
	s.write(ManifestEvent{
		Event:         "error",
		Src:           src,
		Error:         pe.Err.Error(),
		ErrorCategory: string(pe.Category),
	})
}

// LogRunEnd writes the run_end event with the final tallies.
func (s *RunSession) LogRunEnd(sum Summary) {
	s.write(ManifestEvent{
		Event:            "run_end",
		Staged:           sum.Staged,
		Copied:           sum.Copied,
		Duplicates:       sum.Duplicates,
		FailedCopy:       sum.FailedCopy,
		FailedProcessing: sum.FailedProcessing,
		Deleted:          sum.Deleted,
		Pruned:           sum.Pruned,
	})
}

// Close closes the manifest file.
func (s *RunSession) Close() error {
	if s == nil || s.manifest == nil {
		return nil
	}
	return s.manifest.Close()
}

// link hardlinks a placed file into the run directory under its basename,
// suffixing _2, _3, ... when different placements share a basename.
func (s *RunSession) link(dest string) (string, error) {
	base := filepath.Base(dest)

	count := s.usedBasenames[base]
	name := base
	if count > 0 {
		ext := filepath.Ext(base)
		name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(base, ext), count+1, ext)
	}
	s.usedBasenames[base] = count + 1

	if err := os.Link(dest, filepath.Join(s.Dir, name)); err != nil {
		return "", fmt.Errorf("hardlink failed: %w", err)
	}
	return name, nil
}

func (s *RunSession) write(ev ManifestEvent) {
	if s == nil || s.manifest == nil {
		return
	}
	ev.Ts = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if _, err := s.manifest.Write(append(data, '\n')); err != nil {
		return
	}
	s.manifest.Sync()
}
