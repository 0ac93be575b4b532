package gif

import "testing"

func TestCodeTableReset(t *testing.T) {
	table := NewCodeTable(2)
	if got, want := table.Clear(), 4; got != want {
		t.Fatalf("Clear() = %d, want %d", got, want)
	}
	if got, want := table.Stop(), 5; got != want {
		t.Fatalf("Stop() = %d, want %d", got, want)
	}
	if got, want := table.NumEntries(), 6; got != want {
		t.Fatalf("NumEntries() = %d, want %d", got, want)
	}
	for i := 0; i < 4; i++ {
		e := table.Entry(i)
		if e.length != 1 || e.prefix != noPrefix || e.suffix != byte(i) {
			t.Fatalf("literal entry %d = %+v, want {1 %#x %d}", i, e, noPrefix, i)
		}
	}
}

func TestCodeTableAddWiden(t *testing.T) {
	table := NewCodeTable(2) // nentries starts at 6
	if r := table.Add(2, 0, 0); r != growNone {
		t.Fatalf("Add #1 = %v, want growNone (nentries 7)", r)
	}
	if r := table.Add(2, 1, 1); r != growWiden {
		t.Fatalf("Add #2 = %v, want growWiden (nentries crosses 8)", r)
	}
}

func TestCodeTableFullOverridesWiden(t *testing.T) {
	table := NewCodeTable(8) // nentries starts at (1<<8)+2 = 258
	// Drive nentries to exactly one below the cap, then add once more:
	// the addition lands exactly on maxTableEntries, which must report
	// growFull even though 0x1000 is itself a power of two (spec §4.6
	// "Table full", and gifdec.c's explicit "if nentries == 0x1000"
	// override of the grow signal).
	for table.NumEntries() < maxTableEntries-1 {
		table.Add(1, 0, 0)
	}
	if got := table.NumEntries(); got != maxTableEntries-1 {
		t.Fatalf("NumEntries() = %d, want %d", got, maxTableEntries-1)
	}
	if r := table.Add(1, 0, 0); r != growFull {
		t.Fatalf("Add at cap boundary = %v, want growFull", r)
	}
	if got := table.NumEntries(); got != maxTableEntries {
		t.Fatalf("NumEntries() = %d, want %d", got, maxTableEntries)
	}
	if r := table.Add(1, 0, 0); r != growFull {
		t.Fatalf("Add past cap = %v, want growFull", r)
	}
	if got := table.NumEntries(); got != maxTableEntries {
		t.Fatalf("NumEntries() after over-cap add = %d, want unchanged %d", got, maxTableEntries)
	}
}

func TestCodeTableSetSuffix(t *testing.T) {
	table := NewCodeTable(2)
	table.Add(2, 0, 0)
	table.SetSuffix(table.NumEntries()-1, 9)
	if got := table.Entry(table.NumEntries() - 1).suffix; got != 9 {
		t.Fatalf("suffix after patch = %d, want 9", got)
	}
}
