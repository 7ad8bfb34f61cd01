package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"newsbrief/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	apiURL := flag.String("url", getEnvOrDefault("NEWSBRIEF_API_URL", "http://localhost:8080"), "Summarizer API URL")
	downloadDir := flag.String("out", ".", "Directory for Markdown exports")
	flag.Parse()

	m := tui.NewModel(*apiURL, *downloadDir)
	program := tea.NewProgram(m, tea.WithAltScreen())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
