// Package gcode parses and renders the narrow slice of G-code the coaster
// works with: linear moves carrying X/Y/Z/E/F words, the comment markers a
// path planner writes around each path, and CRLF-terminated line I/O.
//
// It is not an interpreter. A parsed Move only knows what is written on its
// own line; no machine state is carried from one line to the next.
package gcode
