// Command extract runs the invoice extraction pipeline on a single
// document and prints the structured result as JSON. It accepts a plain
// text file, a PDF with an embedded text layer, or "-" for text on stdin.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"invoscan/internal/acquire"
	"invoscan/internal/extract"
	"invoscan/internal/port"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: extract <file.txt|file.pdf|->")
		os.Exit(1)
	}
	path := os.Args[1]

	raw, err := readInput(path)
	if err != nil {
		return err
	}

	extractor := extract.New(extract.Dictionary{})
	res, err := extractor.Extract(raw)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		src := acquire.NewPDFText()
		text, err := src.Text(context.Background(), port.Document{
			Bytes:       data,
			ContentType: "application/pdf",
		})
		if err != nil {
			return "", err
		}
		return text, nil
	}
	return string(data), nil
}
