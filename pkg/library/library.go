package library

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"read-frame/pkg/logging"
)

// Book is a plain-text book found in the library directory.
type Book struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
	Size  int64  `json:"size"`
}

// Scan lists the .txt files in dir, sorted by title. The book key is the
// file name without its extension.
func Scan(dir string) ([]Book, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read library %s: %w", dir, err)
	}

	var books []Book
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		key := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		books = append(books, Book{
			Key:   key,
			Title: titleFromKey(key),
			Path:  filepath.Join(dir, entry.Name()),
			Size:  info.Size(),
		})
	}

	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	logging.Logger().Debug("library scanned", zap.String("dir", dir), zap.Int("books", len(books)))
	return books, nil
}

// titleFromKey turns "moby_dick-1851" into "Moby Dick 1851".
func titleFromKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ReadLines loads a book's text as lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("read book: %w", err)
	}
	return lines, nil
}
