package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"library-catalog/library"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openService loads configuration and brings up the core over the data
// directory.
func openService() (*library.Service, error) {
	cfg, err := library.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := library.NewLogger(cfg.Log)
	return library.Open(cfg.DataDir, log)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "library-catalog",
		Short:         "Single-user library catalog manager",
		Long:          "Tracks books, members and loans, computes overdue fines and reports catalog statistics. Run without arguments for the interactive menu.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			runMenu(svc)
			return nil
		},
	}
	root.AddCommand(statsCmd(), overdueCmd())
	return root
}

// statsCmd prints book statistics without entering the menu, for scripted
// use.
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print book statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			stats := svc.BookStatistics()
			fmt.Printf("Total Books: %d\n", stats.Total)
			fmt.Printf("Available:   %d\n", stats.Available)
			fmt.Printf("Borrowed:    %d\n", stats.Borrowed)
			fmt.Printf("Reserved:    %d\n", stats.Reserved)
			fmt.Printf("Lost:        %d\n", stats.Lost)
			return nil
		},
	}
}

// overdueCmd lists overdue loans without entering the menu.
func overdueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List overdue loans",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			loans := svc.GetOverdueLoans()
			if len(loans) == 0 {
				fmt.Println("No overdue loans.")
				return nil
			}
			for _, loan := range loans {
				fmt.Printf("loan %d: %q held by %s (%s), due %s\n",
					loan.ID, loan.Book.Title, loan.Member.FullName(),
					loan.Member.MembershipNumber, loan.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}
