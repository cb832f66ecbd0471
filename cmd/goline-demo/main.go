package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	readline "github.com/saithalavi/nessaid-readline"
)

var commands = []string{"help", "history", "quit", "exit", "echo"}

type prefixCompleter struct{}

func (prefixCompleter) Complete(line string, index int) (string, bool) {
	var matches []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			matches = append(matches, c)
		}
	}
	sort.Strings(matches)
	if index >= len(matches) {
		return "", false
	}
	return matches[index], true
}

func main() {
	ed, err := readline.New(os.Stdin, os.Stdout, os.Stderr, 200)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer ed.Close()
	ed.SetCompleter(prefixCompleter{})

	for {
		line, err := ed.Readline("goline> ")
		if errors.Is(err, readline.ErrEOF) || errors.Is(err, readline.ErrInterrupt) {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		switch strings.TrimSpace(line) {
		case "quit", "exit":
			return
		case "":
			continue
		default:
			fmt.Println(line)
		}
	}
}
