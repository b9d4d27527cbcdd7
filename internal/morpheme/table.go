// Package morpheme holds the declared prefix, root and suffix inventory that
// the segmenter matches against.
//
// Each slot is an ordered rule list. Rules are tried longest form first and
// ties are broken by declaration order, so the order in which a table is
// declared is part of its meaning.
package morpheme

import (
	"errors"
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"MorphScanner/internal/domain"
)

var (
	// ErrInvalidEntry is returned for empty or non-alphabetic forms and bad slots.
	ErrInvalidEntry = errors.New("invalid morpheme entry")
	// ErrDuplicateEntry is returned when a form is declared twice in one slot.
	ErrDuplicateEntry = errors.New("duplicate morpheme entry")
)

// DefaultGlue is the stoplist of single connecting letters that never count
// as unknown residue on their own.
var DefaultGlue = []string{"e", "i", "o"}

// Rule is one entry of a slot's priority list.
type Rule struct {
	Entry domain.MorphemeEntry
	// Order is the declaration index inside the slot.
	Order int
}

// Length returns the form length in runes.
func (r Rule) Length() int {
	return utf8.RuneCountInString(r.Entry.Form)
}

// Table is the read-only morpheme registry. It is safe for concurrent use.
type Table struct {
	rules   map[domain.Slot][]Rule
	byForm  map[domain.Slot]map[string]domain.MorphemeEntry
	entries []domain.MorphemeEntry
	glue    map[string]struct{}
}

// New validates entries and builds the per-slot priority lists.
func New(entries []domain.MorphemeEntry, glue []string) (*Table, error) {
	t := &Table{
		rules: map[domain.Slot][]Rule{},
		byForm: map[domain.Slot]map[string]domain.MorphemeEntry{
			domain.SlotPrefix: {},
			domain.SlotRoot:   {},
			domain.SlotSuffix: {},
		},
		entries: make([]domain.MorphemeEntry, 0, len(entries)),
		glue:    map[string]struct{}{},
	}

	for _, e := range entries {
		if err := validateEntry(e); err != nil {
			return nil, err
		}
		if _, ok := t.byForm[e.Slot][e.Form]; ok {
			return nil, fmt.Errorf("%w: %s %q", ErrDuplicateEntry, e.Slot, e.Form)
		}
		if e.Slot == domain.SlotRoot && e.Role == "" {
			e.Role = domain.RoleRoot
		}
		t.byForm[e.Slot][e.Form] = e
		t.rules[e.Slot] = append(t.rules[e.Slot], Rule{Entry: e, Order: len(t.rules[e.Slot])})
		t.entries = append(t.entries, e)
	}

	for slot := range t.rules {
		slices.SortStableFunc(t.rules[slot], func(a, b Rule) int {
			return b.Length() - a.Length()
		})
	}

	for _, g := range glue {
		if utf8.RuneCountInString(g) != 1 || !isLowerAlpha(g) {
			return nil, fmt.Errorf("%w: glue %q must be a single lowercase letter", ErrInvalidEntry, g)
		}
		t.glue[g] = struct{}{}
	}

	return t, nil
}

func validateEntry(e domain.MorphemeEntry) error {
	switch e.Slot {
	case domain.SlotPrefix, domain.SlotRoot, domain.SlotSuffix:
	default:
		return fmt.Errorf("%w: unknown slot %q for %q", ErrInvalidEntry, e.Slot, e.Form)
	}
	if e.Form == "" {
		return fmt.Errorf("%w: empty %s form", ErrInvalidEntry, e.Slot)
	}
	if !isLowerAlpha(e.Form) {
		return fmt.Errorf("%w: %s %q is not lowercase alphabetic", ErrInvalidEntry, e.Slot, e.Form)
	}
	if e.Role != "" {
		if _, ok := domain.ParseRole(string(e.Role)); !ok {
			return fmt.Errorf("%w: %s %q has unknown role %q", ErrInvalidEntry, e.Slot, e.Form, e.Role)
		}
	}
	return nil
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) || !unicode.IsLower(r) {
			return false
		}
	}
	return s != ""
}

// Rules returns the priority-ordered rule list for slot.
func (t *Table) Rules(slot domain.Slot) []Rule {
	return slices.Clone(t.rules[slot])
}

func (t *Table) slotRules(slot domain.Slot) []Rule {
	return t.rules[slot]
}

// Lookup finds a declared entry by slot and exact form.
func (t *Table) Lookup(slot domain.Slot, form string) (domain.MorphemeEntry, bool) {
	e, ok := t.byForm[slot][form]
	return e, ok
}

// IsGlue reports whether s is a glue letter.
func (t *Table) IsGlue(s string) bool {
	_, ok := t.glue[s]
	return ok
}

// Glue returns the glue letters in sorted order.
func (t *Table) Glue() []string {
	out := make([]string, 0, len(t.glue))
	for g := range t.glue {
		out = append(out, g)
	}
	slices.Sort(out)
	return out
}

// Roots returns the root forms in declaration order.
func (t *Table) Roots() []string {
	var out []string
	for _, e := range t.entries {
		if e.Slot == domain.SlotRoot {
			out = append(out, e.Form)
		}
	}
	return out
}

// Entries returns every entry in declaration order.
func (t *Table) Entries() []domain.MorphemeEntry {
	return slices.Clone(t.entries)
}

// Len is the total number of entries across slots.
func (t *Table) Len() int {
	return len(t.entries)
}

// Match returns the first rule of slot accepted by fn, plus the forms of
// any later rules of equal length that fn would also accept.
func (t *Table) Match(slot domain.Slot, fn func(form string) bool) (Rule, []string, bool) {
	rules := t.slotRules(slot)
	for i, r := range rules {
		if !fn(r.Entry.Form) {
			continue
		}
		var alternatives []string
		for _, other := range rules[i+1:] {
			if other.Length() != r.Length() {
				break
			}
			if fn(other.Entry.Form) {
				alternatives = append(alternatives, other.Entry.Form)
			}
		}
		return r, alternatives, true
	}
	return Rule{}, nil, false
}
