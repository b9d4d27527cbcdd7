package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MorphScanner/internal/domain"
)

func TestParseCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    domain.Candidate
		wantErr bool
	}{
		{in: "qok", want: domain.Candidate{Root: "qok"}},
		{in: " DAIIN:FUNCTION_WORD", want: domain.Candidate{Root: "daiin", Role: domain.RoleFunctionWord}},
		{in: "ol:function", want: domain.Candidate{Root: "ol", Role: domain.RoleFunctionWord}},
		{in: "kee:root", want: domain.Candidate{Root: "kee", Role: domain.RoleRoot}},
		{in: ":ROOT", wantErr: true},
		{in: "kee:verb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCandidate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"qokeedy", "daiin"}, normalizeTokens([]string{" QOKEEDY", "", "daiin "}))
}

type testCLI struct {
	Evaluate EvaluateCmd `cmd:""`
	Promote  PromoteCmd  `cmd:""`
}

func parseArgs(t *testing.T, args ...string) (*testCLI, error) {
	t.Helper()
	var cli testCLI
	parser, err := kong.New(&cli)
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return &cli, err
}

func TestCLIParsesCommands(t *testing.T) {
	t.Parallel()

	cli, err := parseArgs(t, "evaluate", "--candidate=qok,daiin:FUNCTION_WORD", "--discover")
	require.NoError(t, err)
	assert.Equal(t, []string{"qok", "daiin:FUNCTION_WORD"}, cli.Evaluate.Candidate)
	assert.True(t, cli.Evaluate.Discover)

	cli, err = parseArgs(t, "promote", "--round=abc", "--approve=kee,dar")
	require.NoError(t, err)
	assert.Equal(t, "abc", cli.Promote.Round)
	assert.Equal(t, []string{"kee", "dar"}, cli.Promote.Approve)

	_, err = parseArgs(t, "promote", "--approve=kee")
	require.Error(t, err, "one of --report or --round is required")
}
