package library

import (
	"log/slog"
	"strings"
)

// MemberDirectory stores members and resolves them by membership number.
type MemberDirectory struct {
	*store[*Member]
}

// NewMemberDirectory loads the directory from members.json under dir.
func NewMemberDirectory(dir string, log *slog.Logger) (*MemberDirectory, error) {
	s, err := newStore[*Member](dir, "members.json", log)
	if err != nil {
		return nil, err
	}
	return &MemberDirectory{store: s}, nil
}

// Search matches first name, last name, full name, membership number or
// email.
func (d *MemberDirectory) Search(term string) []*Member {
	var out []*Member
	for _, m := range d.all() {
		if !m.Active {
			continue
		}
		if containsFold(m.FirstName, term) ||
			containsFold(m.LastName, term) ||
			containsFold(m.FullName(), term) ||
			strings.Contains(m.MembershipNumber, term) ||
			containsFold(m.Email, term) {
			out = append(out, m)
		}
	}
	return out
}

// GetByMembershipNumber returns the active member with that exact number, or
// nil. Absence is an expected outcome here, not an error.
func (d *MemberDirectory) GetByMembershipNumber(number string) *Member {
	for _, m := range d.all() {
		if m.Active && m.MembershipNumber == number {
			return m
		}
	}
	return nil
}
