package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jmbacasno/mangago"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// renderSummary renders the list header as a small styled table, in place
// of the interactive console the upstream site's own UI would show.
func renderSummary(list *mangago.MangaList) string {
	tags := "N/A"
	if len(list.Tags) > 0 {
		tags = strings.Join(list.Tags, ", ")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Creator", "Created", "Entries", "Tags").
		Row(list.Creator, list.CreationDate, strconv.Itoa(len(list.Entries)), tags)

	var b strings.Builder
	b.WriteString(titleStyle.Render(list.Title))
	b.WriteString("\n")
	b.WriteString(t.Render())
	if list.Description != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render(list.Description))
	}
	return b.String()
}
