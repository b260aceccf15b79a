// Package tui renders the boxed and tabular output of nvmd's own subcommands
// with lipgloss. Shim invocations never touch it.
package tui

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles are built on first use so shim invocations skip terminal detection
var (
	initOnce sync.Once

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorSuccess   lipgloss.Color
	colorMuted     lipgloss.Color

	StyleTitle         lipgloss.Style
	StyleVersion       lipgloss.Style
	StyleActiveVersion lipgloss.Style
	StyleLTS           lipgloss.Style
	StyleMuted         lipgloss.Style

	StyleInfoBox lipgloss.Style

	StyleTableHeader lipgloss.Style
	StyleTableCell   lipgloss.Style
	StyleTableBorder lipgloss.Style

	CheckMark string
	Bullet    string
)

func initStyles() {
	initOnce.Do(func() {
		// Skip the slow capability probe; colors degrade in the terminal anyway
		lipgloss.SetColorProfile(termenv.TrueColor)

		colorPrimary = lipgloss.Color("39")
		colorSecondary = lipgloss.Color("213")
		colorSuccess = lipgloss.Color("42")
		colorMuted = lipgloss.Color("245")

		StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

		StyleVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

		StyleActiveVersion = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSuccess)

		StyleLTS = lipgloss.NewStyle().
			Foreground(colorPrimary)

		StyleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

		StyleInfoBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

		StyleTableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingRight(2)

		StyleTableCell = lipgloss.NewStyle().
			PaddingRight(2)

		StyleTableBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

		CheckMark = lipgloss.NewStyle().Foreground(colorSuccess).Render("✓")
		Bullet = StyleMuted.Render("•")
	})
}

// RenderTitle renders a styled title
func RenderTitle(text string) string {
	initStyles()
	return StyleTitle.Render(text)
}

// RenderVersion renders a version string
func RenderVersion(version string) string {
	initStyles()
	return StyleVersion.Render(version)
}

// RenderActiveVersion renders the version in use
func RenderActiveVersion(version string) string {
	initStyles()
	return StyleActiveVersion.Render(version)
}

// RenderLTS renders an LTS codename
func RenderLTS(codename string) string {
	initStyles()
	return StyleLTS.Render(codename)
}

// RenderMuted renders text in a dim style
func RenderMuted(text string) string {
	initStyles()
	return StyleMuted.Render(text)
}

// RenderInfoBox renders content in a rounded box
func RenderInfoBox(content string) string {
	initStyles()
	return StyleInfoBox.Render(content)
}

// GetCheckMark returns the styled checkmark
func GetCheckMark() string {
	initStyles()
	return CheckMark
}
