package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/born-ml/mlnotes/internal/config"
	"github.com/born-ml/mlnotes/internal/nn"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	reportStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)
)

const keyWidth = 14

// renderSummary describes the run before training starts.
func renderSummary(cfg *config.Train, model *nn.TwoLayerNet, trainRows, valRows int) string {
	in, hidden, out := model.Dims()

	rows := [][2]string{
		{"architecture", fmt.Sprintf("affine(%d→%d) → relu → affine(%d→%d) → sigmoid", in, hidden, hidden, out)},
		{"parameters", fmt.Sprint(model.NumParameters())},
		{"samples", fmt.Sprintf("train=%d val=%d", trainRows, valRows)},
		{"epochs", fmt.Sprint(cfg.Epochs)},
		{"learning rate", fmt.Sprint(cfg.LearningRate)},
		{"batch size", fmt.Sprint(cfg.BatchSize)},
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Two-layer network"))
	for _, r := range rows {
		sb.WriteString("\n  ")
		sb.WriteString(keyStyle.Render(runewidth.FillRight(r[0], keyWidth)))
		sb.WriteString(r[1])
	}
	return sb.String()
}

// renderReport frames the trainer's accuracy report.
func renderReport(report string) string {
	return reportStyle.Render(strings.TrimRight(report, "\n"))
}
