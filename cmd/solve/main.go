// Command solve sends text straight to the configured model and prints the
// answer, bypassing the GUI. Useful for checking the endpoint and model
// without taking a screenshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"screen-reader-solver/config"
	"screen-reader-solver/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	model := flag.String("model", "", "Override the configured model")
	timeout := flag.Duration("timeout", 2*time.Minute, "Request timeout")
	flag.Parse()

	text, err := inputText(flag.Args(), os.Stdin)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %v", err)
	}
	if *model != "" {
		cfg.Model = *model
	}

	client, err := llm.New(llm.Config{BaseURL: cfg.BaseURL, APIKey: cfg.APIKey, Model: cfg.Model})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	answer, err := client.Query(ctx, llm.SystemPrompt, text)
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

// inputText takes the problem text from the arguments, or from stdin when no
// arguments are given.
func inputText(args []string, stdin io.Reader) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %v", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("no input text\nUsage: solve [-model name] <text> (or pipe text on stdin)")
	}
	return text, nil
}
