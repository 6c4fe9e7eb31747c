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
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gowave/InputParameters"
	"github.com/notargets/gowave/model_problems/ScalarWave3D"
)

type Model3D struct {
	ICFile    string
	Graph     bool
	PlotSteps int
	Delay     time.Duration
	Profile   string
}

const exampleFile = `
########################################
Title: "Gauge Wave"
fd_order: 6
Formulation: flux # Can be "secondorder"
Points: [48, 8, 8]
XMin: [-0.5, -0.5, -0.5]
XMax: [0.5, 0.5, 0.5]
bc_type: periodic
Background: gaugewave
BackgroundParameters: {amplitude: 0.1, wavelength: 1}
InitType: planewave
InitParameters: {kx: 6.283185307179586}
CFL: 0.5
FinalTime: 1
Dissipation: 0.02
########################################
`

// ThreeDCmd represents the 3D command
var ThreeDCmd = &cobra.Command{
	Use:   "3D",
	Short: "Three dimensional scalar field evolution on one patch",
	Long: `
Evolves the scalar field from a YAML input file, or a Cactus style parameter
file ending in .par, and reports energy and error against the exact solution.

gowave 3D -I input.yaml -g`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			m3d = &Model3D{}
			ip  *InputParameters.InputParameters3D
		)
		m3d.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		m3d.Graph, _ = cmd.Flags().GetBool("graph")
		m3d.PlotSteps, _ = cmd.Flags().GetInt("plotSteps")
		dr, _ := cmd.Flags().GetInt("delay")
		m3d.Delay = time.Duration(dr) * time.Millisecond
		m3d.Profile, _ = cmd.Flags().GetString("profile")
		if ip, err = processInput(m3d.ICFile); err != nil {
			return
		}
		if m3d.PlotSteps > 0 {
			ip.PlotSteps = m3d.PlotSteps
		}
		return Run3D(m3d, ip)
	},
}

func init() {
	rootCmd.AddCommand(ThreeDCmd)
	ThreeDCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML (or .par) file for input parameters like:\n\t- fd_order\n\t- Background")
	ThreeDCmd.Flags().BoolP("graph", "g", false, "display a graph while computing solution")
	ThreeDCmd.Flags().IntP("delay", "d", 0, "milliseconds of delay for plotting")
	ThreeDCmd.Flags().IntP("plotSteps", "s", 0, "number of steps before each progress line and plot frame")
	ThreeDCmd.Flags().String("profile", "", "write a profile of the run: cpu or mem")
}

// processInput reads a parameter file, Cactus syntax when the name ends in
// .par and YAML otherwise. The root procLimit setting applies when the file
// leaves ProcLimit unset.
func processInput(ICFile string) (ip *InputParameters.InputParameters3D, err error) {
	var (
		data []byte
	)
	if len(ICFile) == 0 {
		fmt.Printf("Example File:%s\n", exampleFile)
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
	}
	if data, err = os.ReadFile(ICFile); err != nil {
		return
	}
	ip = InputParameters.NewInputParameters3D()
	if strings.EqualFold(filepath.Ext(ICFile), ".par") {
		err = ip.ParsePar(data)
	} else {
		err = ip.Parse(data)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ICFile, err)
	}
	if ip.ProcLimit == 0 {
		ip.ProcLimit = viper.GetInt("procLimit")
	}
	return
}

func Run3D(m3d *Model3D, ip *InputParameters.InputParameters3D) (err error) {
	var (
		m *ScalarWave3D.Model
	)
	switch strings.ToLower(m3d.Profile) {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile type %q, use cpu or mem", m3d.Profile)
	}
	if m, err = ScalarWave3D.NewModel(ip); err != nil {
		return
	}
	ip.Print()
	return m.Run(m3d.Graph, m3d.Delay)
}
