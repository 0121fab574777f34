// Package logs provides file tailing helpers for the CLI.
//
// `ladle logs` reads the last lines of the serve log and can follow new
// output as it is appended. Reads are offset based with bounded memory, so
// tailing a large log never loads it whole. Rotated or truncated files are
// picked up again from the start.
package logs
