package persist

import "sort"

const defaultRangeCapacity = 64

// Range is a dirty byte range, offsets relative to the start of the
// mapped pool.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges so a commit can flush them with a
// handful of coalesced msync calls instead of one per write. It is not
// thread-safe; callers serialize access the same way they serialize the
// block mutation the ranges describe.
type Tracker struct {
	ranges   []Range
	pageSize int64
}

// NewTracker returns a Tracker that coalesces ranges to pageSize
// boundaries (typically the OS page size).
func NewTracker(pageSize int64) *Tracker {
	if pageSize <= 0 {
		pageSize = 4096
	}
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: pageSize,
	}
}

// Add records a dirty range. Very fast: it only appends to a slice.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// Reset clears all tracked ranges without flushing them.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns the coalesced, page-aligned, non-overlapping dirty
// ranges accumulated so far, sorted by offset.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool { return aligned[i].Off < aligned[j].Off })

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			if end := next.Off + next.Len; end > current.Off+current.Len {
				current.Len = end - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
