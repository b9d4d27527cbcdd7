package morpheme

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"MorphScanner/internal/domain"
)

// fileEntry is the YAML shape of one declared morpheme.
type fileEntry struct {
	Form      string `yaml:"form"`
	Gloss     string `yaml:"gloss"`
	Validated bool   `yaml:"validated"`
	Role      string `yaml:"role"`
}

// fileTable is the YAML document layout of a morpheme table.
type fileTable struct {
	Glue     []string    `yaml:"glue"`
	Prefixes []fileEntry `yaml:"prefixes"`
	Roots    []fileEntry `yaml:"roots"`
	Suffixes []fileEntry `yaml:"suffixes"`
}

// Load decodes a YAML morpheme table. When the document has no glue key the
// DefaultGlue stoplist is used.
func Load(r io.Reader) (*Table, error) {
	var doc fileTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode morpheme table: %w", err)
	}

	var entries []domain.MorphemeEntry
	for _, group := range []struct {
		slot  domain.Slot
		items []fileEntry
	}{
		{domain.SlotPrefix, doc.Prefixes},
		{domain.SlotRoot, doc.Roots},
		{domain.SlotSuffix, doc.Suffixes},
	} {
		for _, item := range group.items {
			role, ok := domain.ParseRole(item.Role)
			if !ok {
				return nil, fmt.Errorf("%w: %s %q has unknown role %q", ErrInvalidEntry, group.slot, item.Form, item.Role)
			}
			if group.slot != domain.SlotRoot {
				role = ""
			}
			entries = append(entries, domain.MorphemeEntry{
				Form:      item.Form,
				Slot:      group.slot,
				Gloss:     item.Gloss,
				Validated: item.Validated,
				Role:      role,
			})
		}
	}

	glue := doc.Glue
	if glue == nil {
		glue = DefaultGlue
	}
	return New(entries, glue)
}

// LoadFile reads a YAML morpheme table from disk.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open morpheme table: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Marshal encodes t back into the YAML layout accepted by Load.
func Marshal(t *Table) ([]byte, error) {
	doc := fileTable{Glue: t.Glue()}
	for _, e := range t.Entries() {
		item := fileEntry{Form: e.Form, Gloss: e.Gloss, Validated: e.Validated}
		switch e.Slot {
		case domain.SlotPrefix:
			doc.Prefixes = append(doc.Prefixes, item)
		case domain.SlotRoot:
			if e.Role == domain.RoleFunctionWord {
				item.Role = string(e.Role)
			}
			doc.Roots = append(doc.Roots, item)
		case domain.SlotSuffix:
			doc.Suffixes = append(doc.Suffixes, item)
		}
	}
	return yaml.Marshal(doc)
}
