package main

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorYellow    = lipgloss.Color("#FFFF00")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)
)
