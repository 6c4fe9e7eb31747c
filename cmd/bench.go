/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/gowave/InputParameters"
	"github.com/notargets/gowave/model_problems/ScalarWave3D"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Cost of one right hand side evaluation",
	Long: `
Times repeated right hand side evaluations of the input model on a single
go routine and, on Linux, reads the hardware instruction and cycle counters.

gowave bench -I input.yaml -n 20`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParameters3D
		)
		ICFile, _ := cmd.Flags().GetString("inputConditionsFile")
		iterations, _ := cmd.Flags().GetInt("iterations")
		if ip, err = processInput(ICFile); err != nil {
			return
		}
		return RunBench(ip, iterations, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML (or .par) file for input parameters")
	BenchCmd.Flags().IntP("iterations", "n", 10, "number of RHS evaluations")
}

type BenchResult struct {
	Iterations   int
	Points       int
	Elapsed      time.Duration
	Instructions uint64 // Zero when counters are unavailable
	Cycles       uint64
}

func (br BenchResult) Print(out io.Writer) {
	work := float64(br.Iterations * br.Points)
	fmt.Fprintf(out, "%d RHS evaluations of %d points in %v\n", br.Iterations, br.Points, br.Elapsed)
	fmt.Fprintf(out, "%8.5f us/point\n", float64(br.Elapsed.Microseconds())/work)
	if br.Instructions > 0 {
		fmt.Fprintf(out, "%8.2f instructions/point\n", float64(br.Instructions)/work)
	}
	if br.Cycles > 0 {
		fmt.Fprintf(out, "%8.2f cycles/point, IPC = %5.2f\n", float64(br.Cycles)/work,
			float64(br.Instructions)/float64(br.Cycles))
	}
}

// RunBench measures the full RHS with parallelism disabled, so the work
// stays on the calling thread where the counters are attached
func RunBench(ip *InputParameters.InputParameters3D, iterations int, out io.Writer) (err error) {
	var (
		m  *ScalarWave3D.Model
		br = BenchResult{Iterations: iterations}
	)
	if iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, have %d",
			InputParameters.ErrInvalidParameter, iterations)
	}
	ip.ProcLimit = 1
	if m, err = ScalarWave3D.NewModel(ip); err != nil {
		return
	}
	br.Points = m.SW.Patch.InteriorLen()
	rhs := m.SW.NewState()
	evaluate := func() error {
		for i := 0; i < iterations; i++ {
			m.RHS(m.Time, m.State, rhs)
		}
		return nil
	}
	start := time.Now()
	_ = evaluate()
	br.Elapsed = time.Since(start)
	if br.Instructions, br.Cycles, err = hardwareCounters(evaluate); err != nil {
		fmt.Fprintf(out, "hardware counters unavailable: %v\n", err)
		err = nil
	}
	br.Print(out)
	return
}
