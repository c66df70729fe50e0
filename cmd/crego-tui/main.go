package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LaxBloxBoy2/crego/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: crego-tui <deal-file>")
		os.Exit(1)
	}
	dealPath := os.Args[1]

	if _, err := os.Stat(dealPath); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open deal file %s: %v\n", dealPath, err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		tui.NewModel(dealPath),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "crego-tui: %v\n", err)
		os.Exit(1)
	}
}
