package main

import (
	"fmt"
	"os"

	"github.com/leonardcser/xai-web-search/internal/logger"
)

func main() {
	err := rootCmd.Execute()
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
