package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// envEntry is one KEY=VALUE assignment read from a dotenv file.
type envEntry struct {
	Key   string
	Value string
}

// LoadEnvFiles applies dotenv files to the process environment in order, so
// a later file overrides an earlier one. Missing files are skipped. A file
// that fails to parse is reported with its line and nothing from it is set.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		entries, err := readEnvFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := os.Setenv(e.Key, e.Value); err != nil {
				return fmt.Errorf("%s: set %s: %w", p, e.Key, err)
			}
		}
		log.Debug().Str("file", p).Int("vars", len(entries)).Msg("loaded env file")
	}
	return nil
}

func readEnvFile(path string) ([]envEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := parseDotenv(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// parseDotenv reads KEY=VALUE lines. Blank lines, '#' comments and an
// optional "export " prefix are accepted; lines without '=' are skipped.
// Double-quoted values are unescaped, single-quoted values are literal and
// unquoted values end at " #". Values are never expanded.
func parseDotenv(r io.Reader) ([]envEntry, error) {
	var out []envEntry
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, raw, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value, err := dotenvValue(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
		out = append(out, envEntry{Key: key, Value: value})
	}
	return out, scanner.Err()
}

func dotenvValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	switch raw[0] {
	case '"':
		end := closingQuote(raw)
		if end < 0 {
			return "", errors.New("unterminated double quote")
		}
		return strconv.Unquote(raw[:end+1])
	case '\'':
		end := strings.IndexByte(raw[1:], '\'')
		if end < 0 {
			return "", errors.New("unterminated single quote")
		}
		return raw[1 : end+1], nil
	}
	if i := strings.Index(raw, " #"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw), nil
}

// closingQuote returns the index of the unescaped '"' closing raw[0].
func closingQuote(raw string) int {
	for i := 1; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
