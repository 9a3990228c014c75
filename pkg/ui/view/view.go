// Package view turns operation results into a format-neutral document that
// the text and terminal renderers print.
package view

import (
	"fmt"

	"github.com/arthur-debert/punkt/pkg/commands/activate"
	"github.com/arthur-debert/punkt/pkg/commands/diff"
	"github.com/arthur-debert/punkt/pkg/commands/initialize"
	"github.com/arthur-debert/punkt/pkg/commands/list"
	"github.com/arthur-debert/punkt/pkg/commands/sync"
	"github.com/arthur-debert/punkt/pkg/commands/unsync"
)

// Tone is the semantic style of a section
type Tone string

const (
	ToneSuccess Tone = "Success"
	ToneInfo    Tone = "Info"
	ToneWarning Tone = "Warning"
	ToneMuted   Tone = "Muted"
)

// Item is one line in a section. Label, when set, precedes the path.
type Item struct {
	Label string
	Path  string
}

// Section is a headed group of items
type Section struct {
	Heading string
	Tone    Tone
	Items   []Item
}

// Document is a rendered result
type Document struct {
	Title    string
	DryRun   bool
	Sections []Section
	// Empty is printed when there are no sections
	Empty string
}

// PathFunc renders a path in the selected path style
type PathFunc func(string) string

// Build converts a known result into a Document. ok is false for types it
// does not know.
func Build(result interface{}, render PathFunc) (doc Document, ok bool) {
	if render == nil {
		render = func(p string) string { return p }
	}
	b := builder{render: render}

	switch r := result.(type) {
	case *initialize.Result:
		doc = Document{Title: "init", DryRun: r.DryRun}
		var created []Item
		if r.CreatedRoot {
			created = append(created, Item{Label: "local tree", Path: r.LocalRoot})
		}
		if r.CreatedIgnoreFile {
			created = append(created, Item{Label: "ignore file", Path: r.IgnoreFile})
		}
		doc.add(Section{Heading: "Created", Tone: ToneSuccess, Items: created})
		doc.Empty = "Local tree already initialized at " + r.LocalRoot
	case *sync.Result:
		doc = Document{Title: "sync", DryRun: r.DryRun, Empty: "Nothing to sync"}
		doc.add(b.section("Copied", ToneSuccess, r.Copied))
		doc.add(b.section("Created directories", ToneInfo, r.CreatedDirs))
		doc.add(b.section("Unchanged", ToneMuted, r.Skipped))
		doc.add(Section{Heading: "Warnings", Tone: ToneWarning, Items: plain(r.Warnings)})
	case *activate.Result:
		doc = Document{Title: "activate", DryRun: r.DryRun, Empty: "Nothing to activate"}
		doc.add(b.section("Copied", ToneSuccess, r.Copied))
		doc.add(b.section("Created directories", ToneInfo, r.CreatedDirs))
		doc.add(b.section("Unchanged", ToneMuted, r.Unchanged))
	case *unsync.Result:
		doc = Document{Title: "unsync", DryRun: r.DryRun, Empty: "Nothing removed"}
		removed := b.section("Removed", ToneSuccess, r.Removed)
		if r.Untracked > 0 {
			removed.Heading = fmt.Sprintf("Removed (%d tracked entries dropped)", r.Untracked)
		}
		doc.add(removed)
	case *diff.Result:
		doc = Document{Title: "diff", Empty: "No differences"}
		items := make([]Item, 0, len(r.Changes))
		for _, c := range r.Changes {
			items = append(items, Item{Label: string(c.Status), Path: render(c.Path)})
		}
		doc.add(Section{Heading: "Changes", Tone: ToneWarning, Items: items})
	case *list.Result:
		doc = Document{Title: "list", Empty: "Local tree is empty"}
		items := make([]Item, 0, len(r.Entries))
		for _, e := range r.Entries {
			p := render(e.Path)
			if e.IsDir {
				p += "/"
			}
			items = append(items, Item{Path: p})
		}
		doc.add(Section{Tone: ToneInfo, Items: items})
	default:
		return Document{}, false
	}
	return doc, true
}

// add appends s unless it has no items
func (d *Document) add(s Section) {
	if len(s.Items) > 0 {
		d.Sections = append(d.Sections, s)
	}
}

type builder struct {
	render PathFunc
}

func (b builder) section(heading string, tone Tone, paths []string) Section {
	items := make([]Item, 0, len(paths))
	for _, p := range paths {
		items = append(items, Item{Path: b.render(p)})
	}
	return Section{Heading: heading, Tone: tone, Items: items}
}

func plain(lines []string) []Item {
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		items = append(items, Item{Path: l})
	}
	return items
}
