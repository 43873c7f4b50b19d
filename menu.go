package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"library-catalog/library"
)

const dateFormat = "2006-01-02"

// runMenu drives the interactive shell. All state changes go through the
// service; listing screens may read the stores directly.
func runMenu(svc *library.Service) {
	svc.OnBookBorrowed(func(e library.BookBorrowedEvent) {
		writeSuccess(fmt.Sprintf("Book borrowed: %s", e.Book.Title))
	})
	svc.OnBookReturned(func(e library.BookReturnedEvent) {
		writeSuccess(fmt.Sprintf("Book returned: %s", e.Loan.Book.Title))
	})
	svc.OnMemberRegistered(func(e library.MemberRegisteredEvent) {
		writeSuccess(fmt.Sprintf("Member registered: %s (%s)", e.Member.FullName(), e.Member.MembershipNumber))
	})

	sc := bufio.NewScanner(os.Stdin)
	for {
		writeHeader("Library Catalog")
		fmt.Println("1. Book Management")
		fmt.Println("2. Member Management")
		fmt.Println("3. Loan Operations")
		fmt.Println("4. Reports")
		fmt.Println("5. Exit")
		fmt.Println()

		switch readInput(sc, "Select an option (1-5)") {
		case "1":
			bookMenu(sc, svc)
		case "2":
			memberMenu(sc, svc)
		case "3":
			loanMenu(sc, svc)
		case "4":
			reportsMenu(sc, svc)
		case "5", "":
			fmt.Println("Goodbye!")
			return
		default:
			writeError("Invalid option!")
		}
	}
}

// ------------------ Book management ------------------

func bookMenu(sc *bufio.Scanner, svc *library.Service) {
	for {
		writeHeader("Book Management")
		fmt.Println("1. Add New Book")
		fmt.Println("2. Search Books")
		fmt.Println("3. List Available Books")
		fmt.Println("4. Back to Main Menu")
		fmt.Println()

		switch readInput(sc, "Select an option (1-4)") {
		case "1":
			addBook(sc, svc)
		case "2":
			searchBooks(sc, svc)
		case "3":
			listAvailableBooks(svc)
		case "4", "":
			return
		default:
			writeError("Invalid option!")
		}
	}
}

func addBook(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Add New Book")

	book := &library.Book{
		Title: readInput(sc, "Book Title"),
		ISBN:  readInput(sc, "ISBN"),
		Author: library.Author{
			FirstName: readInput(sc, "Author First Name"),
			LastName:  readInput(sc, "Author Last Name"),
		},
		Publisher: readInput(sc, "Publisher"),
		Category:  readInput(sc, "Category"),
	}
	if pubDate, err := time.Parse(dateFormat, readInput(sc, "Publication Date (yyyy-mm-dd)")); err == nil {
		book.PublicationDate = pubDate
	} else {
		book.PublicationDate = time.Now()
	}
	if pages, ok := readInt(sc, "Page Count"); ok {
		book.PageCount = pages
	}

	stored, err := svc.AddBook(book)
	if err != nil {
		writeError(fmt.Sprintf("Error adding book: %v", err))
		return
	}
	writeSuccess(fmt.Sprintf("Book added with ID %d.", stored.ID))
}

func searchBooks(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Search Books")
	term := readInput(sc, "Enter search term (title, author, ISBN, category)")

	books := svc.SearchBooks(term)
	if len(books) == 0 {
		writeWarning("No books found!")
		return
	}
	fmt.Printf("\nFound %d book(s):\n", len(books))
	writeRule()
	for _, b := range books {
		fmt.Printf("ID: %d | Title: %s\n", b.ID, b.Title)
		fmt.Printf("Author: %s | Status: %s\n", b.Author.FullName(), b.Status)
		fmt.Printf("ISBN: %s | Category: %s\n", b.ISBN, b.Category)
		writeRule()
	}
}

func listAvailableBooks(svc *library.Service) {
	writeHeader("Available Books")

	books := svc.GetAvailableBooks()
	if len(books) == 0 {
		writeWarning("No available books!")
		return
	}
	fmt.Printf("Available Books (%d):\n", len(books))
	writeRule()
	for _, b := range books {
		fmt.Printf("ID: %d | %s by %s\n", b.ID, b.Title, b.Author.FullName())
		fmt.Printf("Category: %s | ISBN: %s\n", b.Category, b.ISBN)
		writeRule()
	}
}

// ------------------ Member management ------------------

func memberMenu(sc *bufio.Scanner, svc *library.Service) {
	for {
		writeHeader("Member Management")
		fmt.Println("1. Register New Member")
		fmt.Println("2. Search Members")
		fmt.Println("3. View Member Details")
		fmt.Println("4. Back to Main Menu")
		fmt.Println()

		switch readInput(sc, "Select an option (1-4)") {
		case "1":
			registerMember(sc, svc)
		case "2":
			searchMembers(sc, svc)
		case "3":
			viewMemberDetails(sc, svc)
		case "4", "":
			return
		default:
			writeError("Invalid option!")
		}
	}
}

func registerMember(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Register New Member")

	firstName := readInput(sc, "First Name")
	lastName := readInput(sc, "Last Name")
	email := readInput(sc, "Email")
	phone := readInput(sc, "Phone")

	fmt.Println("\nMember Types:")
	fmt.Println("1. Student")
	fmt.Println("2. Teacher")
	fmt.Println("3. Staff")
	fmt.Println("4. External")

	var memberType library.MemberType
	switch readInput(sc, "Select member type (1-4)") {
	case "2":
		memberType = library.MemberTeacher
	case "3":
		memberType = library.MemberStaff
	case "4":
		memberType = library.MemberExternal
	default:
		memberType = library.MemberStudent
	}

	member := library.NewMember(firstName, lastName, email, phone, memberType)
	if _, err := svc.RegisterMember(member); err != nil {
		writeError(fmt.Sprintf("Error registering member: %v", err))
		return
	}
	fmt.Printf("Membership Number: %s\n", member.MembershipNumber)
}

func searchMembers(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Search Members")
	term := readInput(sc, "Enter search term (name, email, membership number)")

	members := svc.Members().Search(term)
	if len(members) == 0 {
		writeWarning("No members found!")
		return
	}
	fmt.Printf("\nFound %d member(s):\n", len(members))
	writeRule()
	for _, m := range members {
		fmt.Printf("ID: %d | Name: %s\n", m.ID, m.FullName())
		fmt.Printf("Membership #: %s | Type: %s\n", m.MembershipNumber, m.Type)
		fmt.Printf("Email: %s | Phone: %s\n", m.Email, m.Phone)
		fmt.Printf("Total Fines: %.2f\n", m.TotalFines)
		writeRule()
	}
}

func viewMemberDetails(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Member Details")
	number := readInput(sc, "Enter membership number")

	member := svc.GetMemberByNumber(number)
	if member == nil {
		writeWarning("Member not found!")
		return
	}

	fmt.Println("\nMember Information:")
	fmt.Printf("Name: %s\n", member.FullName())
	fmt.Printf("Membership Number: %s\n", member.MembershipNumber)
	fmt.Printf("Type: %s\n", member.Type)
	fmt.Printf("Email: %s\n", member.Email)
	fmt.Printf("Phone: %s\n", member.Phone)
	fmt.Printf("Member Since: %s\n", member.JoinedAt.Format(dateFormat))
	fmt.Printf("Total Fines: %.2f\n", member.TotalFines)

	active := svc.Loans().GetActiveByMember(number)
	if len(active) == 0 {
		fmt.Println("\nNo active loans")
		return
	}
	fmt.Printf("\nActive Loans (%d):\n", len(active))
	now := time.Now()
	for _, loan := range active {
		line := fmt.Sprintf("- %s (Due: %s)", loan.Book.Title, loan.DueDate.Format(dateFormat))
		if loan.Overdue(now) {
			line += " OVERDUE"
		}
		fmt.Println(line)
	}
}

// ------------------ Loan operations ------------------

func loanMenu(sc *bufio.Scanner, svc *library.Service) {
	for {
		writeHeader("Loan Operations")
		fmt.Println("1. Borrow Book")
		fmt.Println("2. Return Book")
		fmt.Println("3. View Overdue Loans")
		fmt.Println("4. View All Active Loans")
		fmt.Println("5. Back to Main Menu")
		fmt.Println()

		switch readInput(sc, "Select an option (1-5)") {
		case "1":
			borrowBook(sc, svc)
		case "2":
			returnBook(sc, svc)
		case "3":
			viewOverdueLoans(svc)
		case "4":
			viewActiveLoans(svc)
		case "5", "":
			return
		default:
			writeError("Invalid option!")
		}
	}
}

func borrowBook(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Borrow Book")

	number := readInput(sc, "Member's Membership Number")
	member := svc.GetMemberByNumber(number)
	if member == nil {
		writeError("Member not found!")
		return
	}
	fmt.Printf("\nMember: %s (%s)\n", member.FullName(), member.Type)

	available := svc.GetAvailableBooks()
	if len(available) == 0 {
		writeWarning("No books available for borrowing!")
		return
	}

	fmt.Println("\nAvailable Books:")
	writeRule()
	shown := available
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, b := range shown {
		fmt.Printf("ID: %d | %s by %s\n", b.ID, b.Title, b.Author.FullName())
	}
	if len(available) > 10 {
		fmt.Printf("... and %d more books; use search to narrow down\n", len(available)-10)
	}
	writeRule()

	bookID, ok := readInt(sc, "Enter Book ID to borrow")
	if !ok {
		writeError("Invalid Book ID!")
		return
	}

	loan, err := svc.Borrow(number, bookID)
	if err != nil {
		writeError(fmt.Sprintf("Error borrowing book: %v", err))
		return
	}
	fmt.Printf("Due Date: %s\n", loan.DueDate.Format(dateFormat))
	fmt.Printf("Loan ID: %d (keep this for return)\n", loan.ID)
}

func returnBook(sc *bufio.Scanner, svc *library.Service) {
	writeHeader("Return Book")

	fmt.Println("Return Methods:")
	fmt.Println("1. Use Loan ID")
	fmt.Println("2. Search by Member")

	var loanID int
	switch readInput(sc, "Select method (1-2)") {
	case "1":
		id, ok := readInt(sc, "Enter Loan ID")
		if !ok {
			writeError("Invalid Loan ID!")
			return
		}
		loanID = id
	case "2":
		number := readInput(sc, "Enter Membership Number")
		active := svc.Loans().GetActiveByMember(number)
		if len(active) == 0 {
			writeWarning("No active loans found for this member!")
			return
		}
		fmt.Println("\nActive Loans:")
		now := time.Now()
		for _, loan := range active {
			fmt.Printf("Loan ID: %d | Book: %s\n", loan.ID, loan.Book.Title)
			due := fmt.Sprintf("Due: %s", loan.DueDate.Format(dateFormat))
			if loan.Overdue(now) {
				due += " OVERDUE"
			}
			fmt.Println(due)
			writeRule()
		}
		id, ok := readInt(sc, "Enter Loan ID to return")
		if !ok {
			writeError("Invalid Loan ID!")
			return
		}
		loanID = id
	default:
		return
	}

	loan, err := svc.Return(loanID)
	if err != nil {
		writeError(fmt.Sprintf("Error returning book: %v", err))
		return
	}
	if loan.Fine > 0 {
		writeWarning(fmt.Sprintf("Late return fine: %.2f", loan.Fine))
	}
}

func viewOverdueLoans(svc *library.Service) {
	writeHeader("Overdue Loans")

	loans := svc.GetOverdueLoans()
	if len(loans) == 0 {
		writeSuccess("No overdue loans!")
		return
	}

	fmt.Printf("Found %d overdue loan(s):\n\n", len(loans))
	now := time.Now()
	var total float64
	for _, loan := range loans {
		days := int(now.Sub(loan.DueDate).Hours() / 24)
		fine := loan.FineAt(now)
		total += fine
		fmt.Printf("Loan ID: %d\n", loan.ID)
		fmt.Printf("Member: %s (%s)\n", loan.Member.FullName(), loan.Member.MembershipNumber)
		fmt.Printf("Book: %s\n", loan.Book.Title)
		fmt.Printf("Due Date: %s\n", loan.DueDate.Format(dateFormat))
		fmt.Printf("Days Overdue: %d\n", days)
		fmt.Printf("Current Fine: %.2f\n", fine)
		writeRule()
	}
	fmt.Printf("\nTotal Outstanding Fines: %.2f\n", total)
}

func viewActiveLoans(svc *library.Service) {
	writeHeader("All Active Loans")

	var active []*library.Loan
	for _, loan := range svc.Loans().GetAll() {
		if loan.Status == library.LoanActive {
			active = append(active, loan)
		}
	}
	if len(active) == 0 {
		writeWarning("No active loans!")
		return
	}
	fmt.Printf("Active Loans (%d):\n", len(active))
	writeRule()
	now := time.Now()
	for _, loan := range active {
		fmt.Printf("Loan ID: %d | %s -> %s\n", loan.ID, loan.Book.Title, loan.Member.FullName())
		due := fmt.Sprintf("Due: %s", loan.DueDate.Format(dateFormat))
		if loan.Overdue(now) {
			due += " OVERDUE"
		}
		fmt.Println(due)
		writeRule()
	}
}

// ------------------ Reports ------------------

func reportsMenu(sc *bufio.Scanner, svc *library.Service) {
	for {
		writeHeader("Reports")
		fmt.Println("1. Book Statistics")
		fmt.Println("2. Overdue Loans")
		fmt.Println("3. All Members")
		fmt.Println("4. Back to Main Menu")
		fmt.Println()

		switch readInput(sc, "Select an option (1-4)") {
		case "1":
			showStatistics(svc)
		case "2":
			viewOverdueLoans(svc)
		case "3":
			listAllMembers(svc)
		case "4", "":
			return
		default:
			writeError("Invalid option!")
		}
	}
}

func showStatistics(svc *library.Service) {
	writeHeader("Book Statistics")

	stats := svc.BookStatistics()
	fmt.Printf("Total Books: %d\n", stats.Total)
	fmt.Printf("Available:   %d\n", stats.Available)
	fmt.Printf("Borrowed:    %d\n", stats.Borrowed)
	fmt.Printf("Reserved:    %d\n", stats.Reserved)
	fmt.Printf("Lost:        %d\n", stats.Lost)
}

func listAllMembers(svc *library.Service) {
	writeHeader("All Members")

	members := svc.Members().GetAll()
	if len(members) == 0 {
		writeWarning("No members registered!")
		return
	}
	for _, m := range members {
		fmt.Printf("%-4d %-25s %-22s %-10s fines: %.2f\n",
			m.ID, m.FullName(), m.MembershipNumber, m.Type, m.TotalFines)
	}
}
