package domain

// Slot is the position a morpheme occupies inside a token.
type Slot string

const (
	SlotPrefix Slot = "prefix"
	SlotRoot   Slot = "root"
	SlotSuffix Slot = "suffix"
)

// Role selects the polarity of the morphology sub-score.
type Role string

const (
	RoleFunctionWord Role = "FUNCTION_WORD"
	RoleRoot         Role = "ROOT"
)

// ParseRole accepts the canonical names plus a few lowercase aliases.
func ParseRole(value string) (Role, bool) {
	switch value {
	case "FUNCTION_WORD", "function_word", "function":
		return RoleFunctionWord, true
	case "ROOT", "root", "":
		return RoleRoot, true
	default:
		return "", false
	}
}

// MorphemeEntry is one declared prefix, root or suffix.
type MorphemeEntry struct {
	Form      string `json:"form"`
	Slot      Slot   `json:"slot"`
	Gloss     string `json:"gloss,omitempty"`
	Validated bool   `json:"validated"`
	Role      Role   `json:"role,omitempty"`
}

// Decomposition is the segmentation of one token.
type Decomposition struct {
	Token          string          `json:"token"`
	Prefix         *MorphemeEntry  `json:"prefix,omitempty"`
	Root           string          `json:"root"`
	RootEntry      *MorphemeEntry  `json:"root_entry,omitempty"`
	SuffixChain    []MorphemeEntry `json:"suffix_chain"`
	UnknownResidue string          `json:"unknown_residue,omitempty"`
	// Alternatives holds same-length forms that also matched and were discarded.
	Alternatives []string `json:"alternatives,omitempty"`
}

// Surface reassembles the token from its parts.
func (d Decomposition) Surface() string {
	out := ""
	if d.Prefix != nil {
		out += d.Prefix.Form
	}
	out += d.Root
	for _, s := range d.SuffixChain {
		out += s.Form
	}
	return out + d.UnknownResidue
}

// Affixed reports whether any prefix or suffix was detected.
func (d Decomposition) Affixed() bool {
	return d.Prefix != nil || len(d.SuffixChain) > 0
}
