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
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/notargets/planerbc/InputParameters"
	"github.com/notargets/planerbc/assembly"
	"github.com/notargets/planerbc/backend"
	"github.com/notargets/planerbc/types"
	"github.com/notargets/planerbc/utils"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type OperatorRun struct {
	InputFile string
	Op        types.OperatorKind
	Scheme    string // Overrides the scheme of the input file when set
	Workers   int
	PlotIndex int    // Matrix index whose diagonal is plotted, negative for none
	MatRange  string // Matrix indices listed in the summary, e.g. ":", "2:5", "end"
	Profile   string
	Perf      bool
}

// OperatorsCmd represents the operators command
var OperatorsCmd = &cobra.Command{
	Use:   "operators",
	Short: "Assemble a model operator at every matrix index and summarise it",
	Long: `
Assembles one model operator (implicit_linear, time, boundary, explicit_linear,
explicit_nonlinear, explicit_nextstep, stencil, split_implicit_linear,
split_boundary, split_boundary_value) for all horizontal modes of the
resolution given in the input file.

planerbc operators -I rbc.yaml --op time --scheme galerkin`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		or := &OperatorRun{}
		if or.InputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		opName, _ := cmd.Flags().GetString("op")
		if or.Op, err = types.ParseOperatorKind(opName); err != nil {
			return
		}
		or.Scheme, _ = cmd.Flags().GetString("scheme")
		or.Workers, _ = cmd.Flags().GetInt("workers")
		or.PlotIndex, _ = cmd.Flags().GetInt("plot")
		or.MatRange, _ = cmd.Flags().GetString("matIdx")
		or.Profile, _ = cmd.Flags().GetString("profile")
		or.Perf, _ = cmd.Flags().GetBool("perf")
		return RunOperators(cmd.OutOrStdout(), or)
	},
}

func init() {
	rootCmd.AddCommand(OperatorsCmd)
	OperatorsCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or INI file with resolution, parameters and boundary conditions")
	OperatorsCmd.Flags().StringP("op", "o", "implicit_linear", "operator to assemble")
	OperatorsCmd.Flags().StringP("scheme", "s", "", "boundary condition scheme, tau or galerkin (default from input file)")
	OperatorsCmd.Flags().IntP("workers", "w", 0, "number of parallel workers (default number of CPUs)")
	OperatorsCmd.Flags().IntP("plot", "p", -1, "plot the diagonal of the operator at this matrix index")
	OperatorsCmd.Flags().StringP("matIdx", "m", ":", "range of matrix indices to summarise, e.g. 2:5, 4:, end")
	OperatorsCmd.Flags().String("profile", "", "write a cpu or mem profile to the current directory")
	OperatorsCmd.Flags().Bool("perf", false, "count CPU instructions of the assembly (linux)")
}

// setup reads the input file and prepares the assembly of its system
func setup(inputFile string, workers int) (ip *InputParameters.RBCParameters, sys *assembly.System, err error) {
	if len(inputFile) == 0 {
		err = fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile)")
		return
	}
	if ip, err = InputParameters.Load(inputFile); err != nil {
		return
	}
	box, err := ip.Box()
	if err != nil {
		return
	}
	bcs, err := ip.BcMap()
	if err != nil {
		return
	}
	be, err := backend.NewModelBackend(backend.Options{
		TruncateQI:    ip.TruncateQI,
		SplitEquation: ip.SplitEquation,
		Logger:        logrus.StandardLogger(),
	})
	if err != nil {
		return
	}
	if sys, err = assembly.NewSystem(be, box, box, bcs, ip.NdMap(), logrus.StandardLogger()); err != nil {
		return
	}
	if workers > 0 {
		sys.Workers = workers
	}
	return
}

func RunOperators(w io.Writer, or *OperatorRun) (err error) {
	switch or.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile kind %q, use cpu or mem", or.Profile)
	}
	ip, sys, err := setup(or.InputFile, or.Workers)
	if err != nil {
		return
	}
	ip.Fprint(w)
	scheme := ip.Scheme
	if or.Scheme != "" {
		scheme = or.Scheme
	}
	req := assembly.Request{Op: or.Op, Fields: backend.Fields}
	if req.Scheme, err = types.ParseBCScheme(scheme); err != nil {
		return
	}
	switch req.Op {
	case types.OpSplitImplicitLinear, types.OpSplitBoundary, types.OpSplitBoundaryValue:
		req.Fields = []types.FieldID{types.VelocityPol}
	}
	i1, i2, err := utils.ParseRange(or.MatRange, sys.NMat())
	if err != nil {
		return
	}
	var mats []utils.DecoupledZSparse
	assemble := func() (err error) {
		mats, err = sys.Assemble(context.Background(), req)
		return
	}
	if or.Perf {
		var count uint64
		if count, err = countInstructions(assemble); err != nil {
			return
		}
		fmt.Fprintf(w, "%d CPU instructions\n", count)
	} else if err = assemble(); err != nil {
		return
	}
	fmt.Fprintln(w, summarise(req, mats, i1, i2, sys))
	if or.PlotIndex >= 0 {
		if or.PlotIndex >= len(mats) {
			return fmt.Errorf("matrix index %d out of range [0,%d)", or.PlotIndex, len(mats))
		}
		fmt.Fprintln(w, plotDiagonal(mats[or.PlotIndex], fmt.Sprintf("diagonal of %v at matrix index %d", req.Op, or.PlotIndex)))
	}
	return
}

// summarise tabulates the matrices with index in [i1,i2)
func summarise(req assembly.Request, mats []utils.DecoupledZSparse, i1, i2 int, sys *assembly.System) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(req.String()) + "\n")
	sb.WriteString(tableRow(headerStyle, "matIdx", "eigs", "rows", "cols", "nnz") + "\n")
	for matIdx := i1; matIdx < i2; matIdx++ {
		z := mats[matIdx]
		nr, nc := z.Dims()
		sb.WriteString(tableRow(cellStyle,
			fmt.Sprint(matIdx),
			fmt.Sprintf("%.4g", sys.Eigs(matIdx)),
			fmt.Sprint(nr), fmt.Sprint(nc), fmt.Sprint(z.NNZ())) + "\n")
	}
	return sb.String()
}

// plotDiagonal plots log10 of the magnitude of the diagonal entries
func plotDiagonal(z utils.DecoupledZSparse, caption string) string {
	var (
		diag = utils.Diagonal(z.Real)
		data = make([]float64, len(diag))
	)
	for i, d := range diag {
		data[i] = log10Abs(d)
	}
	if len(data) == 0 {
		return caption + ": empty"
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
