package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the inventory viewer. Colors are ANSI
// 256-color codes.
type Theme struct {
	TitleForeground    lipgloss.Color
	HeaderForeground   lipgloss.Color
	NormalText         lipgloss.Color
	FaintText          lipgloss.Color
	OutOfStock         lipgloss.Color
	CategoryForeground lipgloss.Color
	CategoryBackground lipgloss.Color
	ErrorForeground    lipgloss.Color
	BorderColor        lipgloss.Color
}

// DefaultTheme suits dark terminals.
var DefaultTheme = Theme{
	TitleForeground:    lipgloss.Color("255"),
	HeaderForeground:   lipgloss.Color("250"),
	NormalText:         lipgloss.Color("252"),
	FaintText:          lipgloss.Color("243"),
	OutOfStock:         lipgloss.Color("203"),
	CategoryForeground: lipgloss.Color("17"),
	CategoryBackground: lipgloss.Color("153"),
	ErrorForeground:    lipgloss.Color("196"),
	BorderColor:        lipgloss.Color("240"),
}
