// Package main provides the entry point for the tabstash CLI.
//
// Tab Stash saves the browser's open tabs into local storage,
// categorizes them, and lets you browse, restore, and pin them from a
// terminal UI.
//
// Usage:
//
//	tabstash             # launch the interactive UI
//	tabstash save        # snapshot open tabs without the UI
//	tabstash list        # print saved tabs
//
// See --help for all available options.
package main

// main is the entry point for tabstash.
func main() {
	Execute()
}
