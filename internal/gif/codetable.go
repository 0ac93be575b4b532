package gif

// maxTableEntries is the 12-bit code ceiling (spec §3, §4.5).
const maxTableEntries = 0x1000

// noPrefix marks a literal entry: "no prefix" in the 12-bit prefix
// field (spec §3 CodeTable entry invariants).
const noPrefix = 0xFFF

// entry is the growable dictionary's (length, prefix, suffix) triple.
type entry struct {
	length uint16
	prefix uint16
	suffix byte
}

// growResult reports what the caller must do after Add.
type growResult int

const (
	growNone growResult = iota
	growWiden
	growFull
)

// CodeTable is the growable LZW prefix/suffix dictionary. Unlike the
// teacher's gifdec.c-style realloc-on-demand Table (doubling bulk from
// 1<<(K+1)), the full 0x1000-entry worst case is preallocated once per
// frame per spec §9 ("Growable buffer"): a systems-language
// implementation has no reason to pay for incremental reallocation when
// the hard cap is small and fixed.
type CodeTable struct {
	entries  [maxTableEntries]entry
	nentries int
	keySize  int
}

// NewCodeTable builds a table for literal key size keySize (1..8) and
// resets it to its initial CLEAR state.
func NewCodeTable(keySize int) *CodeTable {
	table := &CodeTable{keySize: keySize}
	table.Reset()
	return table
}

// Reset reinitializes the literal entries and drops every composed
// entry, as CLEAR requires (spec §4.6).
func (table *CodeTable) Reset() {
	lits := 1 << uint(table.keySize)
	for i := 0; i < lits; i++ {
		table.entries[i] = entry{length: 1, prefix: noPrefix, suffix: byte(i)}
	}
	table.nentries = lits + 2
}

// Clear returns the reserved CLEAR code.
func (table *CodeTable) Clear() int { return 1 << uint(table.keySize) }

// Stop returns the reserved STOP code.
func (table *CodeTable) Stop() int { return table.Clear() + 1 }

// NumEntries returns the current entry count, including the two
// reserved slots.
func (table *CodeTable) NumEntries() int { return table.nentries }

// Entry returns the entry at code, which must be < NumEntries().
func (table *CodeTable) Entry(code int) entry { return table.entries[code] }

// SetSuffix patches the suffix of an already-added entry; used for the
// KwKwK fix-up (spec §4.6, §9).
func (table *CodeTable) SetSuffix(code int, suffix byte) { table.entries[code].suffix = suffix }

// Add appends a new composed entry and reports whether the caller must
// widen key_size before decoding the next code (nentries just crossed a
// power of two) or whether the table has reached its hard cap.
func (table *CodeTable) Add(length uint16, prefix uint16, suffix byte) growResult {
	if table.nentries >= maxTableEntries {
		return growFull
	}
	table.entries[table.nentries] = entry{length: length, prefix: prefix, suffix: suffix}
	table.nentries++
	if table.nentries == maxTableEntries {
		// Reaching the cap exactly on this add overrides what would
		// otherwise be a widen signal (spec §4.6 "Table full").
		return growFull
	}
	if table.nentries&(table.nentries-1) == 0 {
		return growWiden
	}
	return growNone
}
