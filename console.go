package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Color is suppressed when stdout is not a terminal (piped output, tests).
var colorEnabled = term.IsTerminal(int(os.Stdout.Fd()))

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

func colorize(code, msg string) string {
	if !colorEnabled {
		return msg
	}
	return code + msg + ansiReset
}

func writeHeader(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 45))
	fmt.Printf("   %s\n", strings.ToUpper(title))
	fmt.Println(strings.Repeat("=", 45))
	fmt.Println()
}

func writeSuccess(msg string) { fmt.Println(colorize(ansiGreen, "OK  "+msg)) }
func writeWarning(msg string) { fmt.Println(colorize(ansiYellow, "!   "+msg)) }
func writeError(msg string)   { fmt.Println(colorize(ansiRed, "ERR "+msg)) }

func writeRule() { fmt.Println(strings.Repeat("-", 60)) }

func readInput(sc *bufio.Scanner, prompt string) string {
	fmt.Printf("%s: ", prompt)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

// readInt prompts until EOF; ok is false when the input is not a number.
func readInt(sc *bufio.Scanner, prompt string) (int, bool) {
	n, err := strconv.Atoi(readInput(sc, prompt))
	if err != nil {
		return 0, false
	}
	return n, true
}
