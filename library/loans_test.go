package library

import (
	"testing"
	"time"
)

func tempLedger(t *testing.T) *LoanLedger {
	t.Helper()
	l, err := NewLoanLedger(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	return l
}

func sampleLoan(memberNumber, bookTitle string, due time.Time) *Loan {
	return &Loan{
		Member: Member{
			FirstName:        "Mary",
			LastName:         "Shelley",
			MembershipNumber: memberNumber,
		},
		Book:     Book{Title: bookTitle},
		LoanDate: due.AddDate(0, 0, -14),
		DueDate:  due,
		Status:   LoanActive,
	}
}

func TestGetOverdue(t *testing.T) {
	l := tempLedger(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Add(sampleLoan("LIB-A", "Late Book", now.AddDate(0, 0, -2)))
	l.Add(sampleLoan("LIB-B", "On Time", now.AddDate(0, 0, 5)))
	returned := sampleLoan("LIB-C", "Late But Back", now.AddDate(0, 0, -9))
	returned.Status = LoanReturned
	l.Add(returned)

	overdue := l.GetOverdue()
	if len(overdue) != 1 || overdue[0].Book.Title != "Late Book" {
		t.Fatalf("unexpected overdue set: %+v", overdue)
	}
}

func TestGetActiveByMember(t *testing.T) {
	l := tempLedger(t)
	due := time.Now().AddDate(0, 0, 7)

	l.Add(sampleLoan("LIB-A", "First", due))
	l.Add(sampleLoan("LIB-A", "Second", due))
	closed := sampleLoan("LIB-A", "Closed", due)
	closed.Status = LoanReturned
	l.Add(closed)
	l.Add(sampleLoan("LIB-B", "Other Member", due))

	active := l.GetActiveByMember("LIB-A")
	if len(active) != 2 {
		t.Fatalf("want 2 active loans for LIB-A, got %d", len(active))
	}
}

func TestLoanSearch(t *testing.T) {
	l := tempLedger(t)
	due := time.Now().AddDate(0, 0, 7)
	l.Add(sampleLoan("LIB-A", "Frankenstein", due))

	if got := len(l.Search("shelley")); got != 1 {
		t.Errorf("search by member name: want 1, got %d", got)
	}
	if got := len(l.Search("franken")); got != 1 {
		t.Errorf("search by book title: want 1, got %d", got)
	}
	if got := len(l.Search("dracula")); got != 0 {
		t.Errorf("search miss: want 0, got %d", got)
	}
}

func TestFineProjection(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	loan := sampleLoan("LIB-A", "Book", due)

	if got := loan.FineAt(due); got != 0 {
		t.Errorf("fine on due date: want 0, got %v", got)
	}
	if got := loan.FineAt(due.AddDate(0, 0, -1)); got != 0 {
		t.Errorf("fine before due date: want 0, got %v", got)
	}
	if got := loan.FineAt(due.Add(72 * time.Hour)); got != 16.50 {
		t.Errorf("fine 3 days late: want 16.50, got %v", got)
	}
	// Partial days are free.
	if got := loan.FineAt(due.Add(71 * time.Hour)); got != 11.00 {
		t.Errorf("fine 2.96 days late: want 11.00, got %v", got)
	}

	loan.Status = LoanReturned
	if got := loan.FineAt(due.Add(72 * time.Hour)); got != 0 {
		t.Errorf("closed loan projects no fine, got %v", got)
	}
}
