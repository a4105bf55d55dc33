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
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true).Width(22)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(22)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func tableRow(style lipgloss.Style, cells ...string) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = style.Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// log10Abs maps zero entries to the floor of the plot
func log10Abs(x float64) float64 {
	if x == 0 {
		return -16
	}
	return math.Log10(math.Abs(x))
}
