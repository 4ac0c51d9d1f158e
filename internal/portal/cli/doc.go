// Package cli implements the interactive command-line client of the refund
// portal: a small REPL that walks the user through registration, email
// verification, login, password reset, and refund application submission.
//
// All user interaction flows through test seams (printlnFn, readPassword),
// so command handlers can be exercised without a terminal.
package cli
