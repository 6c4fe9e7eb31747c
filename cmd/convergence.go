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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gowave/InputParameters"
	"github.com/notargets/gowave/model_problems/ScalarWave3D"
)

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "RHS truncation error at successively halved spacing",
	Long: `
Builds the input model at several resolutions, doubling the points per
direction, and compares the discrete right hand side against the exact one.
The exact right hand side is a flat space derivative, use a minkowski
background with any coordinate map.

gowave convergence -I input.yaml --levels 3 --csv conv.csv`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip *InputParameters.InputParameters3D
		)
		ICFile, _ := cmd.Flags().GetString("inputConditionsFile")
		levels, _ := cmd.Flags().GetInt("levels")
		csvFile, _ := cmd.Flags().GetString("csv")
		if ip, err = processInput(ICFile); err != nil {
			return
		}
		return RunConvergence(cmd.Context(), ip, levels, csvFile, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML (or .par) file for input parameters of the coarsest level")
	ConvergenceCmd.Flags().IntP("levels", "l", 3, "number of resolutions")
	ConvergenceCmd.Flags().String("csv", "", "write the residuals to this CSV file")
}

func RunConvergence(ctx context.Context, ip *InputParameters.InputParameters3D, levels int,
	csvFile string, out io.Writer) (err error) {
	var (
		study []ScalarWave3D.ResidualLevel
		form  ScalarWave3D.Formulation
		f     *os.File
	)
	if ctx == nil {
		ctx = context.Background()
	}
	if form, err = ScalarWave3D.NewFormulation(ip.Formulation); err != nil {
		return
	}
	if study, err = ScalarWave3D.ConvergenceStudy(ctx, ip, levels); err != nil {
		return
	}
	var (
		names  = form.FieldNames()
		orders = ScalarWave3D.ObservedOrders(study)
	)
	fmt.Fprintf(out, "%-14s%8s", "N", "h")
	for _, name := range names {
		fmt.Fprintf(out, "%11s%7s", name, "order")
	}
	fmt.Fprintf(out, "\n")
	for l, lvl := range study {
		fmt.Fprintf(out, "%-14s%8.5f", fmt.Sprintf("%dx%dx%d", lvl.N[0], lvl.N[1], lvl.N[2]), lvl.H)
		for n := range names {
			fmt.Fprintf(out, "%11.3e", lvl.Linf[n])
			if l == 0 {
				fmt.Fprintf(out, "%7s", "-")
			} else {
				fmt.Fprintf(out, "%7.2f", orders[l-1][n])
			}
		}
		fmt.Fprintf(out, "\n")
	}
	if len(csvFile) == 0 {
		return
	}
	if f, err = os.Create(csvFile); err != nil {
		return
	}
	defer f.Close()
	return ScalarWave3D.WriteConvergenceCSV(f, ip.Title, ip.FDOrder, form, study)
}
