package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"stieregg/internal/tui"
)

func main() {
	_ = godotenv.Load()

	defaultAPI := os.Getenv("STIEREGG_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	apiURL := flag.String("api", defaultAPI, "availability service base URL")
	flag.Parse()

	program := tea.NewProgram(tui.New(*apiURL), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "stayctl:", err)
		os.Exit(1)
	}
}
