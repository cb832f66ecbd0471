// Package readline is a single-line, raw-terminal line editor: history,
// Ctrl-R incremental reverse search, pluggable tab completion, and both a
// synchronous and a cooperative-async KeyReader.
package readline
