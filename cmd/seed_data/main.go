// Command seed_data fills an empty data directory with a small sample
// catalog and member set so a fresh checkout is usable right away. It goes
// through the service so the same persistence and notification paths run as
// in normal operation.
package main

import (
	"fmt"
	"os"
	"time"

	"library-catalog/library"
)

func main() {
	cfg, err := library.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := library.NewLogger(cfg.Log)

	svc, err := library.Open(cfg.DataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open library: %v\n", err)
		os.Exit(1)
	}

	if len(svc.Books().GetAll()) > 0 || len(svc.Members().GetAll()) > 0 {
		fmt.Println("data directory already has records, nothing to do")
		return
	}

	books := []*library.Book{
		{
			Title: "The Go Programming Language", ISBN: "978-0134190440",
			Author:    library.Author{FirstName: "Alan", LastName: "Donovan"},
			Publisher: "Addison-Wesley", Category: "Programming",
			PublicationDate: date(2015, 10, 26), PageCount: 380,
		},
		{
			Title: "Clean Code", ISBN: "978-0132350884",
			Author:    library.Author{FirstName: "Robert", LastName: "Martin"},
			Publisher: "Prentice Hall", Category: "Programming",
			PublicationDate: date(2008, 8, 1), PageCount: 464,
		},
		{
			Title: "The Pragmatic Programmer", ISBN: "978-0135957059",
			Author:    library.Author{FirstName: "David", LastName: "Thomas"},
			Publisher: "Addison-Wesley", Category: "Programming",
			PublicationDate: date(2019, 9, 13), PageCount: 352,
		},
		{
			Title: "A Brief History of Time", ISBN: "978-0553380163",
			Author:    library.Author{FirstName: "Stephen", LastName: "Hawking"},
			Publisher: "Bantam", Category: "Science",
			PublicationDate: date(1998, 9, 1), PageCount: 212,
		},
		{
			Title: "The Name of the Rose", ISBN: "978-0544176560",
			Author:    library.Author{FirstName: "Umberto", LastName: "Eco"},
			Publisher: "Mariner Books", Category: "Fiction",
			PublicationDate: date(1983, 6, 1), PageCount: 536,
		},
	}
	for _, b := range books {
		if _, err := svc.AddBook(b); err != nil {
			fmt.Fprintf(os.Stderr, "add book %q: %v\n", b.Title, err)
			os.Exit(1)
		}
	}

	members := []*library.Member{
		library.NewMember("Alice", "Morgan", "alice.morgan@example.edu", "555-0101", library.MemberStudent),
		library.NewMember("Bruno", "Keller", "bruno.keller@example.edu", "555-0102", library.MemberTeacher),
		library.NewMember("Carla", "Ibanez", "carla.ibanez@example.org", "555-0103", library.MemberExternal),
	}
	for _, m := range members {
		if _, err := svc.RegisterMember(m); err != nil {
			fmt.Fprintf(os.Stderr, "register member %s: %v\n", m.FullName(), err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %d books and %d members under %s\n", len(books), len(members), cfg.DataDir)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
