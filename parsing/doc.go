// Package parsing implements delimiter-token scanning and ${name}
// placeholder expansion over plain string variables.
//
// Key types:
//   - [TokenParser] scans text for open/close delimited tokens and feeds
//     each token body to a handler
//   - [Expand] substitutes ${name} (optionally ${name:default}) placeholders
//     from a variable map
package parsing
