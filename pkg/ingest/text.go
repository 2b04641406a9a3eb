package ingest

import (
	"fmt"
	"os"
)

func loadTextFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	return string(content), nil
}
