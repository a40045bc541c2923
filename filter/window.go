// Package filter holds coordinate-sorted candidates until they fall more than
// a window behind the current record, so that nearby records can filter each
// other before anything is reported.
package filter

// Entry is a queued record.
type Entry interface {
	Chrom() string
	Position() int
	Filtered() bool
	MarkFiltered()
}

// Stats counts the disposition of every entry pushed to a Window.
type Stats struct {
	Pushed     int
	Passed     int
	Suppressed int
}

// Window is a FIFO of entries backed by a ring buffer. Entries must be pushed
// in coordinate order.
type Window[E Entry] struct {
	size         int
	showFiltered bool
	emit         func(E)
	buf          []E
	head         int
	n            int
	stats        Stats
}

// NewWindow returns an empty window. emit receives each evicted entry that is
// not filtered, or every evicted entry when showFiltered is set.
func NewWindow[E Entry](size int, showFiltered bool, emit func(E)) *Window[E] {
	return &Window[E]{size: size, showFiltered: showFiltered, emit: emit, buf: make([]E, 16)}
}

// Len is the number of pending entries.
func (w *Window[E]) Len() int {
	return w.n
}

// Stats returns the disposition counts so far.
func (w *Window[E]) Stats() Stats {
	return w.stats
}

// At returns the i-th pending entry, 0 being the oldest.
func (w *Window[E]) At(i int) E {
	return w.buf[(w.head+i)%len(w.buf)]
}

// Each calls f on every pending entry, oldest first.
func (w *Window[E]) Each(f func(E)) {
	for i := 0; i < w.n; i++ {
		f(w.At(i))
	}
}

// Push appends e to the tail.
func (w *Window[E]) Push(e E) {
	if w.n == len(w.buf) {
		w.grow()
	}
	w.buf[(w.head+w.n)%len(w.buf)] = e
	w.n++
	w.stats.Pushed++
}

func (w *Window[E]) grow() {
	buf := make([]E, 2*len(w.buf))
	for i := 0; i < w.n; i++ {
		buf[i] = w.At(i)
	}
	w.buf = buf
	w.head = 0
}

func (w *Window[E]) pop() E {
	var zero E
	e := w.buf[w.head]
	w.buf[w.head] = zero
	w.head = (w.head + 1) % len(w.buf)
	w.n--
	return e
}

func (w *Window[E]) evict(e E) {
	if e.Filtered() {
		w.stats.Suppressed++
	} else {
		w.stats.Passed++
	}
	if w.showFiltered || !e.Filtered() {
		w.emit(e)
	}
}

// Advance evicts every entry on another contig or more than size bases before pos.
func (w *Window[E]) Advance(chrom string, pos int) {
	var head E
	for w.n > 0 {
		head = w.At(0)
		if head.Chrom() == chrom && head.Position()+w.size >= pos {
			return
		}
		w.evict(w.pop())
	}
}

// Flush evicts all pending entries in FIFO order.
func (w *Window[E]) Flush() {
	for w.n > 0 {
		w.evict(w.pop())
	}
}
