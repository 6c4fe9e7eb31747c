package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

const smallCase = `
Title: Small Case
fd_order: 4
field_mass: 0.5
Points: [8, 4, 4]
InitParameters: {kx: 3.141592653589793}
FinalTime: 0.02
`

func TestProcessInput(t *testing.T) {
	{ // Test YAML input
		ip, err := processInput(writeFile(t, "input.yaml", smallCase))
		require.NoError(t, err)
		assert.Equal(t, "Small Case", ip.Title)
		assert.Equal(t, [3]int{8, 4, 4}, ip.N)
		assert.Equal(t, 0.02, ip.FinalTime)
		// Unset keys keep their defaults
		assert.Equal(t, "periodic", ip.BCType)
	}
	{ // Test Cactus parameter input is selected by extension
		ip, err := processInput(writeFile(t, "input.PAR", `
ScalarWave::fd_order = 6
Grid::nx = 10
InitialData::kx = 2
`))
		require.NoError(t, err)
		assert.Equal(t, 6, ip.FDOrder)
		assert.Equal(t, 10, ip.N[0])
		assert.Equal(t, 2., ip.InitParameters["kx"])
	}
	{ // Test errors
		_, err := processInput("")
		assert.Error(t, err)
		_, err = processInput(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		_, err = processInput(writeFile(t, "bad.par", "ScalarWave::bogus = 1\n"))
		assert.Error(t, err)
	}
}

func TestRunCommands(t *testing.T) {
	{ // Test a short run
		ip, err := processInput(writeFile(t, "input.yaml", smallCase))
		require.NoError(t, err)
		require.NoError(t, Run3D(&Model3D{}, ip))
		ip, err = processInput(writeFile(t, "input.yaml", smallCase))
		require.NoError(t, err)
		assert.Error(t, Run3D(&Model3D{Profile: "gpu"}, ip))
	}
	{ // Test the convergence report and CSV
		ip, err := processInput(writeFile(t, "input.yaml", smallCase))
		require.NoError(t, err)
		var (
			out     bytes.Buffer
			csvFile = filepath.Join(t.TempDir(), "conv.csv")
		)
		require.NoError(t, RunConvergence(context.Background(), ip, 2, csvFile, &out))
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "kphi")
		assert.True(t, strings.HasPrefix(lines[2], "16x8x8"))
		f, err := os.Open(csvFile)
		require.NoError(t, err)
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 1+2*2)
		assert.Equal(t, "Small Case", records[1][0])
	}
	{ // Test the RHS benchmark, counters may be unavailable
		ip, err := processInput(writeFile(t, "input.yaml", smallCase))
		require.NoError(t, err)
		var out bytes.Buffer
		require.NoError(t, RunBench(ip, 2, &out))
		assert.Contains(t, out.String(), "2 RHS evaluations of 128 points")
		assert.Error(t, RunBench(ip, 0, &out))
	}
}
