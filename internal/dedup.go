package internal

// Ledger records the content hashes placed during the current run. Run-scoped
// on purpose: a second run over the same inputs starts with an empty ledger.
type Ledger struct {
	seen map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Contains reports whether hash was already placed this run.
func (l *Ledger) Contains(hash string) bool {
	_, ok := l.seen[hash]
	return ok
}

func (l *Ledger) Add(hash string) {
	l.seen[hash] = struct{}{}
}
