package morpheme

import "MorphScanner/internal/domain"

// defaultEntries is the working EVA inventory. Glosses are hypotheses.
var defaultEntries = []domain.MorphemeEntry{
	{Form: "qok", Slot: domain.SlotPrefix, Gloss: "locative"},
	{Form: "qot", Slot: domain.SlotPrefix, Gloss: "locative"},
	{Form: "qo", Slot: domain.SlotPrefix, Gloss: "determiner"},
	{Form: "cth", Slot: domain.SlotPrefix},
	{Form: "ckh", Slot: domain.SlotPrefix},
	{Form: "ch", Slot: domain.SlotPrefix, Gloss: "verbal"},
	{Form: "sh", Slot: domain.SlotPrefix, Gloss: "verbal"},
	{Form: "ok", Slot: domain.SlotPrefix},
	{Form: "ot", Slot: domain.SlotPrefix},
	{Form: "so", Slot: domain.SlotPrefix},

	{Form: "daiin", Slot: domain.SlotRoot, Gloss: "this", Validated: true, Role: domain.RoleFunctionWord},
	{Form: "dair", Slot: domain.SlotRoot, Gloss: "there", Role: domain.RoleFunctionWord},
	{Form: "dar", Slot: domain.SlotRoot, Gloss: "place"},
	{Form: "ched", Slot: domain.SlotRoot, Gloss: "prepared"},
	{Form: "keed", Slot: domain.SlotRoot},
	{Form: "kee", Slot: domain.SlotRoot, Gloss: "water"},
	{Form: "tch", Slot: domain.SlotRoot},
	{Form: "kch", Slot: domain.SlotRoot},
	{Form: "pch", Slot: domain.SlotRoot},
	{Form: "ol", Slot: domain.SlotRoot, Gloss: "and", Validated: true, Role: domain.RoleFunctionWord},
	{Form: "or", Slot: domain.SlotRoot, Gloss: "or", Role: domain.RoleFunctionWord},
	{Form: "ar", Slot: domain.SlotRoot, Gloss: "at", Role: domain.RoleFunctionWord},
	{Form: "al", Slot: domain.SlotRoot},
	{Form: "ke", Slot: domain.SlotRoot},
	{Form: "te", Slot: domain.SlotRoot},
	{Form: "lk", Slot: domain.SlotRoot},

	{Form: "aiin", Slot: domain.SlotSuffix, Gloss: "plural"},
	{Form: "eedy", Slot: domain.SlotSuffix},
	{Form: "edy", Slot: domain.SlotSuffix, Gloss: "participle"},
	{Form: "ain", Slot: domain.SlotSuffix},
	{Form: "iin", Slot: domain.SlotSuffix},
	{Form: "dy", Slot: domain.SlotSuffix, Gloss: "past"},
	{Form: "ey", Slot: domain.SlotSuffix},
	{Form: "ol", Slot: domain.SlotSuffix},
	{Form: "al", Slot: domain.SlotSuffix},
	{Form: "ar", Slot: domain.SlotSuffix},
	{Form: "or", Slot: domain.SlotSuffix},
	{Form: "am", Slot: domain.SlotSuffix},
	{Form: "y", Slot: domain.SlotSuffix, Gloss: "nominal"},
}

// Default returns the built-in EVA morpheme table.
func Default() *Table {
	t, err := New(defaultEntries, DefaultGlue)
	if err != nil {
		panic("morpheme: invalid default table: " + err.Error())
	}
	return t
}
