package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"MorphScanner/internal/domain"
	"MorphScanner/internal/infrastructure/storage"
	"MorphScanner/internal/morpheme"
)

// SegmentCmd prints one decomposition per token.
type SegmentCmd struct {
	Tokens []string `arg:"" help:"Tokens to decompose"`
}

func (c *SegmentCmd) Run(rt *runtime) error {
	return writeJSON(rt.out, rt.app.Segment(normalizeTokens(c.Tokens)))
}

// DiscoverCmd lists roots proposed by segmenting the corpus.
type DiscoverCmd struct {
	Residue bool `help:"Also propose unknown residues of two or more letters"`
}

func (c *DiscoverCmd) Run(rt *runtime) error {
	found, err := rt.app.Discover(rt.ctx, c.Residue)
	if err != nil {
		return err
	}
	return writeJSON(rt.out, found)
}

// EvaluateCmd runs a validation round.
type EvaluateCmd struct {
	Candidate []string `name:"candidate" short:"r" sep:"," help:"Candidate roots as root or root:ROLE"`
	Discover  bool     `help:"Add every candidate discovered in the corpus"`
	Residue   bool     `help:"With --discover, include unknown residues"`
	Out       string   `help:"Write the report to this file instead of stdout" type:"path"`
}

func (c *EvaluateCmd) Run(rt *runtime) error {
	cands := make([]domain.Candidate, 0, len(c.Candidate))
	for _, raw := range c.Candidate {
		cand, err := parseCandidate(raw)
		if err != nil {
			return err
		}
		cands = append(cands, cand)
	}

	if c.Discover {
		found, err := rt.app.Discover(rt.ctx, c.Residue)
		if err != nil {
			return err
		}
		for _, f := range found {
			cands = append(cands, f.Candidate)
		}
	}
	if len(cands) == 0 {
		return fmt.Errorf("no candidates: pass --candidate or --discover")
	}

	report, err := rt.app.Evaluate(rt.ctx, cands)
	if err != nil {
		return err
	}

	if c.Out == "" {
		return writeJSON(rt.out, report)
	}
	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := writeJSON(f, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	fmt.Fprintf(rt.out, "round %s: %d candidates, %d validated, report written to %s\n",
		report.ID, len(report.Scores), len(report.Validated()), c.Out)
	return nil
}

// PromoteCmd merges reviewer-approved roots into the vocabulary.
type PromoteCmd struct {
	Report  string   `help:"Round report file" type:"existingfile" xor:"source" required:""`
	Round   string   `help:"Stored round id" xor:"source" required:""`
	Approve []string `help:"Roots approved by the reviewer" sep:"," required:""`
}

func (c *PromoteCmd) Run(rt *runtime) error {
	var report *domain.RoundReport
	if c.Report != "" {
		r, err := storage.ReadReport(c.Report)
		if err != nil {
			return err
		}
		report = &r
	}

	res, err := rt.app.Promote(rt.ctx, report, c.Round, normalizeTokens(c.Approve))
	if err != nil {
		return err
	}
	return writeJSON(rt.out, res)
}

// VocabularyCmd prints the current snapshot.
type VocabularyCmd struct{}

func (c *VocabularyCmd) Run(rt *runtime) error {
	snap, err := rt.app.Vocabulary(rt.ctx)
	if err != nil {
		return err
	}
	return writeJSON(rt.out, snap.Record())
}

// TableCmd prints the morpheme table.
type TableCmd struct{}

func (c *TableCmd) Run(rt *runtime) error {
	raw, err := morpheme.Marshal(rt.app.Table())
	if err != nil {
		return err
	}
	_, err = rt.out.Write(raw)
	return err
}

// parseCandidate accepts "root" or "root:ROLE".
func parseCandidate(raw string) (domain.Candidate, error) {
	root, roleText, _ := strings.Cut(strings.TrimSpace(raw), ":")
	root = strings.ToLower(root)
	if root == "" {
		return domain.Candidate{}, fmt.Errorf("candidate %q has no root", raw)
	}
	if roleText == "" {
		return domain.Candidate{Root: root}, nil
	}
	role, ok := domain.ParseRole(roleText)
	if !ok {
		return domain.Candidate{}, fmt.Errorf("candidate %q: unknown role %q", raw, roleText)
	}
	return domain.Candidate{Root: root, Role: role}, nil
}

func normalizeTokens(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
