package library

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := Open(t.TempDir(), testLogger())
	require.NoError(t, err)
	return svc
}

func addTestBook(t *testing.T, svc *Service, title string) *Book {
	t.Helper()
	book, err := svc.AddBook(&Book{
		Title:  title,
		ISBN:   "978-0000000000",
		Author: Author{FirstName: "Jane", LastName: "Smith"},
	})
	require.NoError(t, err)
	return book
}

func registerTestMember(t *testing.T, svc *Service, memberType MemberType) *Member {
	t.Helper()
	member, err := svc.RegisterMember(NewMember("Test", "Member", "test@example.org", "555-0100", memberType))
	require.NoError(t, err)
	return member
}

func TestBorrowAndReturnFlow(t *testing.T) {
	svc := newTestService(t)
	book := addTestBook(t, svc, "Borrowable")
	member := registerTestMember(t, svc, MemberStudent)

	assert.Equal(t, BookAvailable, book.Status, "AddBook defaults status")

	loan, err := svc.Borrow(member.MembershipNumber, book.ID)
	require.NoError(t, err)
	assert.Equal(t, LoanActive, loan.Status)
	assert.True(t, loan.DueDate.Equal(loan.LoanDate.AddDate(0, 0, 14)), "student period is 14 days")
	assert.Equal(t, float64(0), loan.Fine)

	got, err := svc.Books().GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, BookBorrowed, got.Status)

	returned, err := svc.Return(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, LoanReturned, returned.Status)
	assert.NotNil(t, returned.ReturnDate)
	assert.Equal(t, float64(0), returned.Fine, "on-time return carries no fine")

	got, err = svc.Books().GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, BookAvailable, got.Status)
}

func TestBorrowUnknownMember(t *testing.T) {
	svc := newTestService(t)
	book := addTestBook(t, svc, "Lonely")

	_, err := svc.Borrow("LIB-00000000000000-0000", book.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestBorrowUnknownBook(t *testing.T) {
	svc := newTestService(t)
	member := registerTestMember(t, svc, MemberStudent)

	_, err := svc.Borrow(member.MembershipNumber, 404)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

// At most one active loan may reference a book: the second borrow sees the
// Borrowed status and fails without creating a loan.
func TestBorrowedBookCannotBeBorrowedAgain(t *testing.T) {
	svc := newTestService(t)
	book := addTestBook(t, svc, "Popular")
	first := registerTestMember(t, svc, MemberStudent)
	second := registerTestMember(t, svc, MemberStudent)

	_, err := svc.Borrow(first.MembershipNumber, book.ID)
	require.NoError(t, err)

	_, err = svc.Borrow(second.MembershipNumber, book.ID)
	assert.ErrorIs(t, err, ErrBookUnavailable)
	assert.Len(t, svc.Loans().GetAll(), 1, "failed borrow must not create a loan")
}

func TestLoanLimit(t *testing.T) {
	svc := newTestService(t)
	// External members may hold two loans.
	member := registerTestMember(t, svc, MemberExternal)

	for i := 0; i < 2; i++ {
		book := addTestBook(t, svc, "Book")
		_, err := svc.Borrow(member.MembershipNumber, book.ID)
		require.NoError(t, err)
	}

	extra := addTestBook(t, svc, "One Too Many")
	_, err := svc.Borrow(member.MembershipNumber, extra.ID)
	assert.ErrorIs(t, err, ErrLoanLimitExceeded)
	assert.Len(t, svc.Loans().GetActiveByMember(member.MembershipNumber), 2)
}

func TestReturnLateChargesFineOnce(t *testing.T) {
	svc := newTestService(t)
	book := addTestBook(t, svc, "Overdue")
	member := registerTestMember(t, svc, MemberStudent)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	loan, err := svc.Borrow(member.MembershipNumber, book.ID)
	require.NoError(t, err)

	// 3 whole days past the 14-day due date.
	svc.now = func() time.Time { return base.AddDate(0, 0, 17) }

	returned, err := svc.Return(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, 16.50, returned.Fine)

	// The fine lands on the live member record, not the loan's snapshot.
	live := svc.GetMemberByNumber(member.MembershipNumber)
	require.NotNil(t, live)
	assert.Equal(t, 16.50, live.TotalFines)
	assert.Equal(t, float64(0), returned.Member.TotalFines, "snapshot stays historical")

	// Returning again must fail and must not double-charge.
	_, err = svc.Return(loan.ID)
	assert.ErrorIs(t, err, ErrLoanNotActive)
	assert.Equal(t, 16.50, svc.GetMemberByNumber(member.MembershipNumber).TotalFines)
}

func TestReturnOnDueDateIsFree(t *testing.T) {
	svc := newTestService(t)
	book := addTestBook(t, svc, "Punctual")
	member := registerTestMember(t, svc, MemberStudent)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	loan, err := svc.Borrow(member.MembershipNumber, book.ID)
	require.NoError(t, err)

	svc.now = func() time.Time { return loan.DueDate }

	returned, err := svc.Return(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), returned.Fine)
	assert.Equal(t, float64(0), svc.GetMemberByNumber(member.MembershipNumber).TotalFines)
}

func TestReturnUnknownLoan(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Return(99)
	assert.ErrorIs(t, err, ErrLoanNotFound)
}

func TestLoanPeriodsPerMemberType(t *testing.T) {
	cases := []struct {
		memberType MemberType
		days       int
	}{
		{MemberStudent, 14},
		{MemberTeacher, 30},
		{MemberStaff, 21},
		{MemberExternal, 7},
	}
	for _, tc := range cases {
		svc := newTestService(t)
		book := addTestBook(t, svc, "Book")
		member := registerTestMember(t, svc, tc.memberType)

		loan, err := svc.Borrow(member.MembershipNumber, book.ID)
		require.NoError(t, err)
		assert.True(t, loan.DueDate.Equal(loan.LoanDate.AddDate(0, 0, tc.days)),
			"period for %s", tc.memberType)
	}
}

func TestNotifications(t *testing.T) {
	svc := newTestService(t)

	var borrowed []BookBorrowedEvent
	var returned []BookReturnedEvent
	var registered []MemberRegisteredEvent
	svc.OnBookBorrowed(func(e BookBorrowedEvent) { borrowed = append(borrowed, e) })
	svc.OnBookReturned(func(e BookReturnedEvent) { returned = append(returned, e) })
	svc.OnMemberRegistered(func(e MemberRegisteredEvent) { registered = append(registered, e) })

	book := addTestBook(t, svc, "Announced")
	member := registerTestMember(t, svc, MemberStudent)
	loan, err := svc.Borrow(member.MembershipNumber, book.ID)
	require.NoError(t, err)
	_, err = svc.Return(loan.ID)
	require.NoError(t, err)

	require.Len(t, registered, 1)
	assert.Equal(t, member.MembershipNumber, registered[0].Member.MembershipNumber)
	require.Len(t, borrowed, 1)
	assert.Equal(t, book.ID, borrowed[0].Book.ID)
	require.Len(t, returned, 1)
	assert.Equal(t, loan.ID, returned[0].Loan.ID)
	assert.NotEqual(t, uuid.Nil, borrowed[0].Event.ID)
}

func TestBookStatistics(t *testing.T) {
	svc := newTestService(t)
	addTestBook(t, svc, "Shelf")
	borrowedBook := addTestBook(t, svc, "Out")
	reserved := addTestBook(t, svc, "Held")
	reserved.Status = BookReserved
	require.NoError(t, svc.Books().Update(reserved))

	member := registerTestMember(t, svc, MemberStudent)
	_, err := svc.Borrow(member.MembershipNumber, borrowedBook.ID)
	require.NoError(t, err)

	stats := svc.BookStatistics()
	assert.Equal(t, BookStats{Total: 3, Available: 1, Borrowed: 1, Reserved: 1}, stats)
}

// Reloading the service over the same directory preserves state across runs.
func TestPersistenceAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	svc, err := Open(dir, testLogger())
	require.NoError(t, err)

	book := addTestBook(t, svc, "Durable")
	member := registerTestMember(t, svc, MemberStudent)
	loan, err := svc.Borrow(member.MembershipNumber, book.ID)
	require.NoError(t, err)

	svc2, err := Open(dir, testLogger())
	require.NoError(t, err)

	got, err := svc2.Books().GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, BookBorrowed, got.Status)
	assert.NotNil(t, svc2.GetMemberByNumber(member.MembershipNumber))

	returned, err := svc2.Return(loan.ID)
	require.NoError(t, err)
	assert.Equal(t, LoanReturned, returned.Status)
}
