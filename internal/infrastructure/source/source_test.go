package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/RetroPath-Completion/internal/domain/pathway"
	"github.com/turtacn/RetroPath-Completion/internal/domain/transformation"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const pathwaysCSV = `Path ID,Unique ID,Rule ID,Left,Right
1,TRS_0_0_0_0,"RR-01,RR-02",1.CMPD_0000000003,1.TARGET_0000000001
1,TRS_0_1_1_0,RR-03,1.MNXM13:2.CMPD_0000000025,1.CMPD_0000000003
2,TRS_0_0_0_1,"RR-01,RR-02",1.CMPD_0000000003,1.TARGET_0000000001
`

func TestPathwayCSVReader_Read(t *testing.T) {
	path := writeFile(t, "out_paths.csv", pathwaysCSV)

	masters, transfos, err := NewPathwayCSVReader(path, logging.NewNopLogger()).Read(context.Background())
	require.NoError(t, err)

	require.Len(t, masters, 2)
	assert.Equal(t, transformation.MasterPathway{ID: 1, TransfoIDs: []string{"TRS_0_0_0", "TRS_0_1_1"}}, masters[0])
	assert.Equal(t, transformation.MasterPathway{ID: 2, TransfoIDs: []string{"TRS_0_0_0"}}, masters[1])

	// The iteration suffix is stripped, so rows 1 and 3 share one record.
	require.Len(t, transfos, 2)
	first := transfos["TRS_0_0_0"]
	assert.Equal(t, []string{"RR-01", "RR-02"}, first.RuleIDs)
	assert.Equal(t, map[string]int{"CMPD_0000000003": 1}, first.Left)
	assert.Equal(t, map[string]int{"TARGET_0000000001": 1}, first.Right)

	second := transfos["TRS_0_1_1"]
	assert.Equal(t, map[string]int{"MNXM13": 1, "CMPD_0000000025": 2}, second.Left)
}

func TestPathwayCSVReader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"header only", "Path ID,Unique ID,Rule ID,Left,Right\n", errors.ErrCodeSourceEmpty},
		{"non-integer path id", "Path ID,Unique ID,Rule ID,Left,Right\nX1,TRS_0_0_0_0,RR-01,1.A,1.B\n", errors.ErrCodeInvalidPathwayID},
		{"missing column", "Path ID,Unique ID\n1,TRS_0_0_0_0\n", errors.ErrCodeSourceMalformed},
		{"bad stoichiometry", "Path ID,Unique ID,Rule ID,Left,Right\n1,TRS_0_0_0_0,RR-01,nodot,1.B\n", errors.ErrCodeSourceMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "out_paths.csv", tt.content)
			_, _, err := NewPathwayCSVReader(path, nil).Read(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code))
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, _, err := NewPathwayCSVReader("/nonexistent/out_paths.csv", nil).Read(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeSourceNotFound))
	})
}

func TestMetNetECReader_FiltersSentinel(t *testing.T) {
	const metnet = `h1,h2,h3,h4,h5,h6,h7,h8,h9,h10,h11,h12
x,TRS_0_0_0,c,d,e,f,g,h,i,j,k,"[1.1.1.1, 2.3.1.54]"
x,TRS_0_1_1,c,d,e,f,g,h,i,j,k,[NOEC]
short,row
`
	path := writeFile(t, "out_metnet.csv", metnet)

	ec, err := NewMetNetECReader(path, logging.NewNopLogger()).ECNumbers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"1.1.1.1", "2.3.1.54"}, ec["TRS_0_0_0"])
	_, ok := ec["TRS_0_1_1"]
	assert.False(t, ok)
}

func TestSinkCSVReader_Sink(t *testing.T) {
	const sinkCSV = "\"Name\",\"InChI\"\n\"MNXM1\",\"InChI=1S/p+1\"\n\"MNXM13\",\"InChI=1S/CO2/c2-1-3\"\n"
	path := writeFile(t, "sink.csv", sinkCSV)

	sink, err := NewSinkCSVReader(path, nil).Sink(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"MNXM1": {}, "MNXM13": {}}, sink)
}

func TestLoadCompounds(t *testing.T) {
	const compoundsTSV = "CID\tSMILES\nCMPD_0000000003\tCC=O\nMNXM13\tO=C=O\n"
	path := writeFile(t, "compounds.txt", compoundsTSV)

	registry := pathway.NewRegistry()
	// Pre-seeded records win over file rows.
	registry.Register(pathway.NewCompound("MNXM13", pathway.Structure{SMILES: "custom", Name: "CO2"}))

	n, err := LoadCompounds(path, registry, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	aldehyde, ok := registry.Lookup("CMPD_0000000003")
	require.True(t, ok)
	assert.Equal(t, "CC=O", aldehyde.SMILES)

	co2, ok := registry.Lookup("MNXM13")
	require.True(t, ok)
	assert.Equal(t, "custom", co2.SMILES)
}

func TestScoreTSVReader_Load(t *testing.T) {
	const rulesTSV = "Rule_ID\tReaction_ID\tScore\nRR-01\tMNXR01\t0.5772\nRR-01\tMNXR02\t0.25\nRR-02\tMNXR03\t1\n"
	path := writeFile(t, "rules.tsv", rulesTSV)

	table, err := NewScoreTSVReader(path, nil).Load()
	require.NoError(t, err)

	score, ok := table.Score(context.Background(), "RR-01", "MNXR01")
	require.True(t, ok)
	assert.Equal(t, 0.5772, score)
	_, ok = table.Score(context.Background(), "RR-02", "MNXR01")
	assert.False(t, ok)
}

func TestFileRebuildService(t *testing.T) {
	const doc = `{
  "RR-01": [
    {"id": "MNXR01", "left": {"struct": {"MNXM1": 1}}, "right": {"nostruct": {"MNXM9": 2}}},
    {"id": "MNXR02", "left": {}, "right": {}}
  ]
}`
	path := writeFile(t, "rebuild.json", doc)

	svc, err := NewFileRebuildService(path, logging.NewNopLogger())
	require.NoError(t, err)

	rc, err := svc.Rebuild(context.Background(), "RR-01", "CC=O>>CCO", transformation.DirectionForward)
	require.NoError(t, err)
	assert.Equal(t, []string{"MNXR01", "MNXR02"}, rc.TemplateIDs)
	assert.Equal(t, map[string]int{"MNXM1": 1}, rc.ByTemplate["MNXR01"].Left.Struct)
	assert.Equal(t, map[string]int{"MNXM9": 2}, rc.ByTemplate["MNXR01"].Right.NoStruct)

	// Unknown rules resolve to empty completions, not errors.
	rc, err = svc.Rebuild(context.Background(), "RR-99", "CC=O>>CCO", transformation.DirectionForward)
	require.NoError(t, err)
	assert.True(t, rc.Empty())

	_, err = svc.Rebuild(context.Background(), "RR-01", "CC=O>>CCO", "retro")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRebuildFailed))
}
