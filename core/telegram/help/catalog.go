// Package help keeps the ordered command descriptions used to build the
// default /help reply.
package help

import (
	"strings"

	"github.com/samedamci/telegrask/core/telegram/format"
)

// Entry pairs a command name with its help text.
type Entry struct {
	Name string
	Text string
}

// Catalog accumulates command descriptions in registration order.
//
// Add never replaces: registering the same name twice keeps both entries and
// Render lists every occurrence. The catalog is written only during the
// single-threaded registration phase, so it carries no locking.
type Catalog struct {
	entries []Entry
}

// Add appends an entry. Duplicate names are kept as-is.
func (c *Catalog) Add(name, text string) {
	c.entries = append(c.entries, Entry{Name: name, Text: text})
}

// Len reports the number of recorded entries, duplicates included.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Snapshot returns a copy of the entries in insertion order. Mutating the
// returned slice does not affect the catalog.
func (c *Catalog) Snapshot() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Render produces the help message body, one "/name — text" line per entry.
// An empty catalog renders an empty string.
func (c *Catalog) Render() string {
	var b strings.Builder
	for i, e := range c.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(format.Bold("/" + e.Name))
		b.WriteString(" — ")
		b.WriteString(e.Text)
	}
	return b.String()
}
