package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/doeshing/termnamer/internal/domain"
	"github.com/doeshing/termnamer/internal/ports"
)

// StdoutRenamer reports renames as "rename <id> <name>" lines, and generated
// session ids as "opened <id>" lines, for a terminal multiplexer hook.
type StdoutRenamer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdoutRenamer writes rename lines to out.
func NewStdoutRenamer(out io.Writer) *StdoutRenamer {
	return &StdoutRenamer{out: out}
}

// Rename implements ports.SessionRenamer.
func (r *StdoutRenamer) Rename(_ context.Context, id domain.SessionID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintf(r.out, "rename %s %s\n", id, name)
	return err
}

// Opened reports an id generated for a bare open event as "opened <id>".
func (r *StdoutRenamer) Opened(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "opened %s\n", id)
}

var _ ports.SessionRenamer = (*StdoutRenamer)(nil)
