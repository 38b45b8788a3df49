// Package record persists the results of cifra operations as small,
// timestamped text files, optionally LZ4-compressed for archiving.
package record
