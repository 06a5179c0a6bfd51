package maillist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadAddresses reads a newline-delimited address file for a list. Blank
// lines and lines starting with # are skipped; addresses are trimmed but
// otherwise forwarded as-is, the remote service owns syntax validation.
func ReadAddresses(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("source file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer file.Close()

	var addresses []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		addresses = append(addresses, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	return addresses, nil
}
