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
	"strings"

	"github.com/notargets/planerbc/backend"
	"github.com/spf13/cobra"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the fields, couplings and block sizes of a model",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var inputFile string
		if inputFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		return RunInfo(cmd.OutOrStdout(), inputFile)
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML or INI file with resolution, parameters and boundary conditions")
}

func RunInfo(w io.Writer, inputFile string) (err error) {
	ip, sys, err := setup(inputFile, 1)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render(err.Error()))
		return
	}
	ip.Fprint(w)
	eqs, ops, err := sys.Info(backend.Fields)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render(err.Error()))
		return
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%d matrix indices", sys.NMat())) + "\n")
	sb.WriteString(tableRow(headerStyle, "field", "block", "tau", "galerkin", "shift", "rhs", "tau rows") + "\n")
	for _, f := range backend.Fields {
		var (
			eq   = eqs[f]
			mean = ops[f][0]
			last = ops[f][len(ops[f])-1]
			rows = fmt.Sprint(mean.TauRows)
		)
		if last.TauRows != mean.TauRows {
			rows = fmt.Sprintf("%d (mean %d)", last.TauRows, mean.TauRows)
		}
		sb.WriteString(tableRow(cellStyle,
			f.String(),
			fmt.Sprint(eq.BlockSize),
			fmt.Sprint(mean.TauN),
			fmt.Sprint(mean.GalN),
			fmt.Sprint(mean.Shift),
			fmt.Sprint(mean.RHS),
			rows) + "\n")
	}
	fmt.Fprint(w, sb.String())
	return
}
