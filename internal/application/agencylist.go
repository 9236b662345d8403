// Package application contains use-case orchestration services.
package application

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseAgencyList reads agency names, one per line. Surrounding whitespace is
// trimmed; blank lines and lines starting with '#' are skipped. Order is
// preserved.
func ParseAgencyList(r io.Reader) ([]string, error) {
	var agencies []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		agencies = append(agencies, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading agency list: %w", err)
	}

	return agencies, nil
}

// LoadAgencyList reads the agency list from the given file.
func LoadAgencyList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening agency list %s: %w", path, err)
	}
	defer f.Close()

	agencies, err := ParseAgencyList(f)
	if err != nil {
		return nil, fmt.Errorf("parsing agency list %s: %w", path, err)
	}

	return agencies, nil
}
