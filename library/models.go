package library

import (
	"fmt"
	"math/rand"
	"time"
)

// Entity is the base embedded by every persisted record. Identifiers are
// assigned by the store and never reused within a data file's lifetime; a
// soft-deleted record keeps its slot on disk with Active cleared.
type Entity struct {
	ID        int        `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Active    bool       `json:"active"`
}

func (e *Entity) meta() *Entity { return e }

// BookStatus describes where a book currently is. The borrow/return workflow
// only ever moves books between Available and Borrowed; the remaining states
// are set by staff through direct updates.
type BookStatus string

const (
	BookAvailable        BookStatus = "available"
	BookBorrowed         BookStatus = "borrowed"
	BookReserved         BookStatus = "reserved"
	BookLost             BookStatus = "lost"
	BookUnderMaintenance BookStatus = "under_maintenance"
)

// MemberType determines a member's loan limit and loan period.
type MemberType string

const (
	MemberStudent  MemberType = "student"
	MemberTeacher  MemberType = "teacher"
	MemberStaff    MemberType = "staff"
	MemberExternal MemberType = "external"
)

// LoanStatus tracks a loan's lifecycle. Overdue and Lost are never set by
// the workflow itself; lateness is derived from the due date (see
// Loan.Overdue) so no background process has to flip statuses.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
	LoanLost     LoanStatus = "lost"
)

// Author is embedded in a book as a plain name pair.
type Author struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (a Author) FullName() string { return a.FirstName + " " + a.LastName }

// Book is a catalog record.
type Book struct {
	Entity
	Title           string     `json:"title"`
	ISBN            string     `json:"isbn"`
	Author          Author     `json:"author"`
	Publisher       string     `json:"publisher"`
	Category        string     `json:"category"`
	PublicationDate time.Time  `json:"publication_date"`
	PageCount       int        `json:"page_count"`
	Status          BookStatus `json:"status"`
}

func (b *Book) IsAvailable() bool { return b.Status == BookAvailable }

// Member is a registered borrower. MembershipNumber is generated once at
// construction and is the external lookup key; the numeric ID stays
// internal. TotalFines only ever grows through the return workflow.
type Member struct {
	Entity
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	MembershipNumber string     `json:"membership_number"`
	Type             MemberType `json:"member_type"`
	JoinedAt         time.Time  `json:"joined_at"`
	TotalFines       float64    `json:"total_fines"`
}

func (m *Member) FullName() string { return m.FirstName + " " + m.LastName }

// NewMember fills the generated fields of a fresh member record.
func NewMember(firstName, lastName, email, phone string, memberType MemberType) *Member {
	now := time.Now()
	return &Member{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Phone:            phone,
		MembershipNumber: generateMembershipNumber(now),
		Type:             memberType,
		JoinedAt:         now,
	}
}

const membershipPrefix = "LIB"

// generateMembershipNumber builds the human-readable key: fixed prefix, a
// timestamp to the second, and a 4-digit random suffix. Collisions between
// registrations within the same second are possible and not defended
// against; the store serves a single user.
func generateMembershipNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", membershipPrefix, now.Format("20060102150405"), 1000+rand.Intn(9000))
}

// Loan records one circulation of a book. Member and Book are snapshots
// taken when the loan was created; anything that mutates the live records
// must go through their own stores. DueDate is fixed at creation and Fine is
// written exactly once, at return time.
type Loan struct {
	Entity
	Member     Member     `json:"member"`
	Book       Book       `json:"book"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Fine       float64    `json:"fine"`
	Status     LoanStatus `json:"status"`
}

// Overdue reports whether the loan is still out past its due date.
func (l *Loan) Overdue(now time.Time) bool {
	return l.Status == LoanActive && now.After(l.DueDate)
}

// FineAt projects the fine that would be charged if the loan were returned
// at the given time. Partial days are free.
func (l *Loan) FineAt(now time.Time) float64 {
	if !l.Overdue(now) {
		return 0
	}
	overdueDays := int(now.Sub(l.DueDate).Hours() / 24)
	return float64(overdueDays) * FinePerDay
}
