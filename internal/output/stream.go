// Package output writes explored entries to a terminal or any other writer.
package output

import "github.com/temirov/minitree/internal/explorer"

// StreamRenderer consumes entries in traversal order.
type StreamRenderer interface {
	Handle(entry explorer.Entry) error
	Flush() error
}
