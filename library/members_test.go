package library

import (
	"strings"
	"testing"
)

func tempDirectory(t *testing.T) *MemberDirectory {
	t.Helper()
	d, err := NewMemberDirectory(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("new directory: %v", err)
	}
	return d
}

func TestMembershipNumberFormat(t *testing.T) {
	m := NewMember("Ada", "Lovelace", "ada@example.org", "555-0100", MemberStudent)

	parts := strings.Split(m.MembershipNumber, "-")
	if len(parts) != 3 {
		t.Fatalf("want prefix-timestamp-suffix, got %q", m.MembershipNumber)
	}
	if parts[0] != membershipPrefix {
		t.Errorf("want prefix %q, got %q", membershipPrefix, parts[0])
	}
	if len(parts[1]) != 14 {
		t.Errorf("want second-resolution timestamp, got %q", parts[1])
	}
	if len(parts[2]) != 4 {
		t.Errorf("want 4-digit suffix, got %q", parts[2])
	}
}

func TestGetByMembershipNumber(t *testing.T) {
	d := tempDirectory(t)
	m, err := d.Add(NewMember("Ada", "Lovelace", "ada@example.org", "555-0100", MemberStudent))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := d.GetByMembershipNumber(m.MembershipNumber); got == nil || got.ID != m.ID {
		t.Fatalf("lookup by membership number failed: %+v", got)
	}
	// Absence is nil, not an error.
	if got := d.GetByMembershipNumber("LIB-00000000000000-0000"); got != nil {
		t.Fatalf("want nil for unknown number, got %+v", got)
	}
}

func TestDeletedMemberNotResolvable(t *testing.T) {
	d := tempDirectory(t)
	m, _ := d.Add(NewMember("Ada", "Lovelace", "ada@example.org", "555-0100", MemberStudent))
	if err := d.Delete(m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := d.GetByMembershipNumber(m.MembershipNumber); got != nil {
		t.Fatalf("deleted member still resolvable: %+v", got)
	}
}

func TestMemberSearch(t *testing.T) {
	d := tempDirectory(t)
	m, _ := d.Add(NewMember("Grace", "Hopper", "grace.hopper@navy.mil", "555-0101", MemberStaff))
	d.Add(NewMember("Alan", "Turing", "alan@bletchley.uk", "555-0102", MemberTeacher))

	cases := []struct {
		term string
		want int
	}{
		{"grace", 1},
		{"HOPPER", 1},
		{"Grace Hopper", 1},
		{m.MembershipNumber, 1},
		{"navy.mil", 1},
		{"a", 2}, // matches both somewhere
		{"zz", 0},
	}
	for _, tc := range cases {
		if got := len(d.Search(tc.term)); got != tc.want {
			t.Errorf("Search(%q): want %d, got %d", tc.term, tc.want, got)
		}
	}
}
