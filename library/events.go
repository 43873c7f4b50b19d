package library

import (
	"time"

	"github.com/google/uuid"
)

// Event is the envelope shared by every notification the service emits.
type Event struct {
	ID         uuid.UUID
	OccurredAt time.Time
}

func newEvent(now time.Time) Event {
	return Event{ID: uuid.New(), OccurredAt: now}
}

// BookBorrowedEvent is emitted after a successful borrow.
type BookBorrowedEvent struct {
	Event
	Book *Book
}

// BookReturnedEvent is emitted after a successful return.
type BookReturnedEvent struct {
	Event
	Loan *Loan
}

// MemberRegisteredEvent is emitted after a member is registered.
type MemberRegisteredEvent struct {
	Event
	Member *Member
}

// The service owns the subscriber lists. Delivery is synchronous and
// in-process, immediately after the triggering state change has been
// persisted; a handler cannot affect the operation's outcome.

// OnBookBorrowed registers a handler for borrow notifications.
func (s *Service) OnBookBorrowed(fn func(BookBorrowedEvent)) {
	s.bookBorrowed = append(s.bookBorrowed, fn)
}

// OnBookReturned registers a handler for return notifications.
func (s *Service) OnBookReturned(fn func(BookReturnedEvent)) {
	s.bookReturned = append(s.bookReturned, fn)
}

// OnMemberRegistered registers a handler for registration notifications.
func (s *Service) OnMemberRegistered(fn func(MemberRegisteredEvent)) {
	s.memberRegistered = append(s.memberRegistered, fn)
}

func (s *Service) emitBookBorrowed(b *Book) {
	e := BookBorrowedEvent{Event: newEvent(s.now()), Book: b}
	for _, fn := range s.bookBorrowed {
		fn(e)
	}
}

func (s *Service) emitBookReturned(l *Loan) {
	e := BookReturnedEvent{Event: newEvent(s.now()), Loan: l}
	for _, fn := range s.bookReturned {
		fn(e)
	}
}

func (s *Service) emitMemberRegistered(m *Member) {
	e := MemberRegisteredEvent{Event: newEvent(s.now()), Member: m}
	for _, fn := range s.memberRegistered {
		fn(e)
	}
}
