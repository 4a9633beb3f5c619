// Package main implements the entry point for the Tili API server, which
// stores Korean vocabulary flashcards for Telegram Mini App users, schedules
// their reviews and translates new words with a language model.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
