// Package events carries session lifecycle and command notifications into
// the naming core. Events arrive as a line protocol, one event per line:
//
//	open <id>
//	close <id>
//	cmd <id> <command text...>
//	rename <id>
//	reload
//
// Blank lines and lines starting with '#' are ignored.
package events

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/doeshing/termnamer/internal/domain"
)

// Kind names an event type.
type Kind string

const (
	KindOpen   Kind = "open"
	KindClose  Kind = "close"
	KindCmd    Kind = "cmd"
	KindRename Kind = "rename"
	KindReload Kind = "reload"
)

// AllSessions as the id of a rename event names every session with history.
const AllSessions domain.SessionID = "*"

// Event is one parsed line.
type Event struct {
	Kind      Kind
	SessionID domain.SessionID
	Text      string
	// Assigned is set on an open event whose id was generated here. The
	// host only learns that id if it is reported back.
	Assigned bool
}

// String renders e back into its line form.
func (e Event) String() string {
	switch e.Kind {
	case KindReload:
		return string(e.Kind)
	case KindCmd:
		return fmt.Sprintf("%s %s %s", e.Kind, e.SessionID, e.Text)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.SessionID)
	}
}

// ParseLine decodes a single protocol line. ok is false for blank and
// comment lines.
func ParseLine(line string) (ev Event, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Event{}, false, nil
	}

	word, rest := splitWord(line)
	kind := Kind(strings.ToLower(word))
	switch kind {
	case KindReload:
		if rest != "" {
			return Event{}, false, fmt.Errorf("reload takes no arguments: %q", line)
		}
		return Event{Kind: kind}, true, nil

	case KindOpen:
		id, extra := splitWord(rest)
		if extra != "" {
			return Event{}, false, fmt.Errorf("open takes one session id: %q", line)
		}
		if id == "" {
			return Event{Kind: kind, SessionID: domain.SessionID(uuid.NewString()), Assigned: true}, true, nil
		}
		return Event{Kind: kind, SessionID: domain.SessionID(id)}, true, nil

	case KindClose, KindRename:
		id, extra := splitWord(rest)
		if id == "" || extra != "" {
			return Event{}, false, fmt.Errorf("%s needs exactly one session id: %q", kind, line)
		}
		return Event{Kind: kind, SessionID: domain.SessionID(id)}, true, nil

	case KindCmd:
		id, text := splitWord(rest)
		if id == "" || text == "" {
			return Event{}, false, fmt.Errorf("cmd needs a session id and command text: %q", line)
		}
		return Event{Kind: kind, SessionID: domain.SessionID(id), Text: text}, true, nil

	default:
		return Event{}, false, fmt.Errorf("unknown event %q", word)
	}
}

func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
