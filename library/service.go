package library

import (
	"fmt"
	"log/slog"
	"time"
)

// FinePerDay is charged per whole day a loan is returned late.
const FinePerDay = 5.50

// Service orchestrates the catalog, directory and ledger and enforces the
// circulation rules.
type Service struct {
	books   *BookCatalog
	members *MemberDirectory
	loans   *LoanLedger
	log     *slog.Logger
	now     func() time.Time

	bookBorrowed     []func(BookBorrowedEvent)
	bookReturned     []func(BookReturnedEvent)
	memberRegistered []func(MemberRegisteredEvent)
}

// NewService wires a service over already-constructed stores.
func NewService(books *BookCatalog, members *MemberDirectory, loans *LoanLedger, log *slog.Logger) *Service {
	return &Service{
		books:   books,
		members: members,
		loans:   loans,
		log:     log,
		now:     time.Now,
	}
}

// Open builds the three stores under dataDir and a service over them.
func Open(dataDir string, log *slog.Logger) (*Service, error) {
	books, err := NewBookCatalog(dataDir, log)
	if err != nil {
		return nil, err
	}
	members, err := NewMemberDirectory(dataDir, log)
	if err != nil {
		return nil, err
	}
	loans, err := NewLoanLedger(dataDir, log)
	if err != nil {
		return nil, err
	}
	return NewService(books, members, loans, log), nil
}

// Store accessors for read-only listing and reporting. Anything that
// mutates state goes through the workflow methods below.

func (s *Service) Books() *BookCatalog       { return s.books }
func (s *Service) Members() *MemberDirectory { return s.members }
func (s *Service) Loans() *LoanLedger        { return s.loans }

// maxLoans is the cap on concurrent active loans per member category.
func maxLoans(t MemberType) int {
	switch t {
	case MemberTeacher:
		return 10
	case MemberStaff:
		return 5
	case MemberExternal:
		return 2
	default:
		return 3
	}
}

// loanPeriodDays is the loan period per member category.
func loanPeriodDays(t MemberType) int {
	switch t {
	case MemberTeacher:
		return 30
	case MemberStaff:
		return 21
	case MemberExternal:
		return 7
	default:
		return 14
	}
}

// ------------------ Book operations ------------------

// AddBook persists a new book. Status defaults to Available unless the
// caller set one explicitly.
func (s *Service) AddBook(book *Book) (*Book, error) {
	if book.Status == "" {
		book.Status = BookAvailable
	}
	stored, err := s.books.Add(book)
	if err != nil {
		return nil, err
	}
	s.log.Info("book added", "id", stored.ID, "title", stored.Title)
	return stored, nil
}

// GetAvailableBooks lists the books currently on the shelf.
func (s *Service) GetAvailableBooks() []*Book { return s.books.GetAvailable() }

// SearchBooks matches title, author, ISBN or category.
func (s *Service) SearchBooks(term string) []*Book { return s.books.Search(term) }

// ------------------ Member operations ------------------

// RegisterMember persists a new member and announces the registration. The
// membership number was generated when the member was constructed.
func (s *Service) RegisterMember(member *Member) (*Member, error) {
	stored, err := s.members.Add(member)
	if err != nil {
		return nil, err
	}
	s.emitMemberRegistered(stored)
	s.log.Info("member registered", "member", stored.FullName(), "number", stored.MembershipNumber)
	return stored, nil
}

// GetMemberByNumber resolves a member by membership number; nil when absent.
func (s *Service) GetMemberByNumber(membershipNumber string) *Member {
	return s.members.GetByMembershipNumber(membershipNumber)
}

// ------------------ Loan operations ------------------

// Borrow checks a book out to a member. It fails with ErrMemberNotFound,
// ErrBookNotFound, ErrBookUnavailable or ErrLoanLimitExceeded; on success
// the book is marked Borrowed, the loan is persisted with a due date from
// the member's category, and a BookBorrowedEvent is emitted.
func (s *Service) Borrow(membershipNumber string, bookID int) (*Loan, error) {
	member := s.members.GetByMembershipNumber(membershipNumber)
	if member == nil {
		return nil, fmt.Errorf("membership %s: %w", membershipNumber, ErrMemberNotFound)
	}

	book, err := s.books.GetByID(bookID)
	if err != nil {
		return nil, fmt.Errorf("book %d: %w", bookID, ErrBookNotFound)
	}
	if !book.IsAvailable() {
		return nil, fmt.Errorf("%q is %s: %w", book.Title, book.Status, ErrBookUnavailable)
	}

	active := s.loans.GetActiveByMember(membershipNumber)
	limit := maxLoans(member.Type)
	if len(active) >= limit {
		return nil, fmt.Errorf("%d of %d loans out: %w", len(active), limit, ErrLoanLimitExceeded)
	}

	now := s.now()
	book.Status = BookBorrowed
	if err := s.books.Update(book); err != nil {
		return nil, err
	}

	loan := &Loan{
		Member:   *member,
		Book:     *book,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, loanPeriodDays(member.Type)),
		Status:   LoanActive,
	}
	stored, err := s.loans.Add(loan)
	if err != nil {
		return nil, err
	}

	s.emitBookBorrowed(book)
	s.log.Info("book borrowed",
		"book", book.Title, "member", member.FullName(), "due", stored.DueDate)
	return stored, nil
}

// Return closes out a loan. A late return is fined once, here, at
// FinePerDay per whole overdue day; the fine is added to the live member
// record's balance. The book goes back to Available and a BookReturnedEvent
// is emitted.
func (s *Service) Return(loanID int) (*Loan, error) {
	loan, err := s.loans.GetByID(loanID)
	if err != nil {
		return nil, fmt.Errorf("loan %d: %w", loanID, ErrLoanNotFound)
	}
	if loan.Status != LoanActive {
		return nil, fmt.Errorf("loan %d is %s: %w", loanID, loan.Status, ErrLoanNotActive)
	}

	now := s.now()
	if loan.Overdue(now) {
		loan.Fine = loan.FineAt(now)
		// The loan's member is a historical snapshot; fines accrue on the
		// live record.
		if member := s.members.GetByMembershipNumber(loan.Member.MembershipNumber); member != nil {
			member.TotalFines += loan.Fine
			if err := s.members.Update(member); err != nil {
				return nil, err
			}
		}
	}

	loan.ReturnDate = &now
	loan.Status = LoanReturned
	if err := s.loans.Update(loan); err != nil {
		return nil, err
	}

	// Same snapshot hazard for the book: resolve the live record.
	if book, err := s.books.GetByID(loan.Book.ID); err == nil {
		book.Status = BookAvailable
		if err := s.books.Update(book); err != nil {
			return nil, err
		}
	}

	s.emitBookReturned(loan)
	s.log.Info("book returned", "book", loan.Book.Title, "fine", loan.Fine)
	return loan, nil
}

// GetOverdueLoans lists the active loans past their due date.
func (s *Service) GetOverdueLoans() []*Loan { return s.loans.GetOverdue() }

// ------------------ Reports ------------------

// BookStats counts active books by status.
type BookStats struct {
	Total     int
	Available int
	Borrowed  int
	Reserved  int
	Lost      int
}

// BookStatistics tallies the active catalog.
func (s *Service) BookStatistics() BookStats {
	var stats BookStats
	for _, b := range s.books.GetAll() {
		stats.Total++
		switch b.Status {
		case BookAvailable:
			stats.Available++
		case BookBorrowed:
			stats.Borrowed++
		case BookReserved:
			stats.Reserved++
		case BookLost:
			stats.Lost++
		}
	}
	return stats
}
