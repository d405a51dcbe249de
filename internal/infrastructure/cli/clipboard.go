package cli

import (
	"github.com/atotto/clipboard"

	"github.com/doeshing/termnamer/internal/ports"
)

// Clipboard implements ports.Clipboard on top of the system clipboard.
type Clipboard struct{}

// NewClipboard builds the clipboard helper.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Enabled reports whether a clipboard utility is available.
func (c *Clipboard) Enabled() bool {
	return !clipboard.Unsupported
}

// Copy places text on the system clipboard.
func (c *Clipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var _ ports.Clipboard = (*Clipboard)(nil)
