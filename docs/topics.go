// Package docs embeds the user documentation topics shown by
// `carteira topic`.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// GetTopic returns the content of a documentation topic.
func GetTopic(topic string) (string, error) {
	path := topic + ".md"

	content, err := docs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}

	return string(content), nil
}

// GetTopics returns the content of multiple documentation topics concatenated
// together. The special topic "*" expands to all topics.
func GetTopics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		if topic == "*" {
			allTopics, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			for _, t := range allTopics {
				content, err := GetTopic(t)
				if err != nil {
					return "", err
				}
				b.WriteString(content)
				b.WriteString("\n")
			}
			continue
		}
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns a sorted list of all available documentation topics,
// readme first.
func GetAllTopics() ([]string, error) {
	var topics []string
	err := fs.WalkDir(docs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if base != "readme" {
			topics = append(topics, base)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(topics)
	return append([]string{"readme"}, topics...), nil
}
