package library

import (
	"log/slog"
	"time"
)

// LoanLedger stores loans and answers circulation queries. Loans embed
// member and book snapshots, so its predicates work without touching the
// other stores.
type LoanLedger struct {
	*store[*Loan]

	now func() time.Time
}

// NewLoanLedger loads the ledger from loans.json under dir.
func NewLoanLedger(dir string, log *slog.Logger) (*LoanLedger, error) {
	s, err := newStore[*Loan](dir, "loans.json", log)
	if err != nil {
		return nil, err
	}
	return &LoanLedger{store: s, now: time.Now}, nil
}

// Search matches the borrowing member's full name or the book title.
func (l *LoanLedger) Search(term string) []*Loan {
	var out []*Loan
	for _, loan := range l.all() {
		if !loan.Active {
			continue
		}
		if containsFold(loan.Member.FullName(), term) || containsFold(loan.Book.Title, term) {
			out = append(out, loan)
		}
	}
	return out
}

// GetOverdue returns the active loans past their due date.
func (l *LoanLedger) GetOverdue() []*Loan {
	now := l.now()
	var out []*Loan
	for _, loan := range l.all() {
		if loan.Active && loan.Overdue(now) {
			out = append(out, loan)
		}
	}
	return out
}

// GetActiveByMember returns the active-status loans held by the member with
// the given membership number.
func (l *LoanLedger) GetActiveByMember(membershipNumber string) []*Loan {
	var out []*Loan
	for _, loan := range l.all() {
		if loan.Active && loan.Status == LoanActive && loan.Member.MembershipNumber == membershipNumber {
			out = append(out, loan)
		}
	}
	return out
}
