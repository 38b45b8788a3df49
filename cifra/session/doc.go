// Package session runs the interactive text front end of cifra: a menu over
// the Toolkit operations that reads hex inputs line by line, prints results
// and optionally persists them as records.
package session
