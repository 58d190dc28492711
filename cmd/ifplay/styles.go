package main

import "github.com/charmbracelet/lipgloss"

var (
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleGreen  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleCyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)
