package markdownparser

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// FrontMatter is the YAML header of a literate source.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Input       []string `yaml:"input"`
}

// parseFrontMatter splits YAML front matter from markdown content. It returns
// the body and the number of lines the header occupied.
func parseFrontMatter(content string) (FrontMatter, string, int, error) {
	var frontMatter FrontMatter

	if !strings.HasPrefix(content, "---\n") {
		return frontMatter, content, 0, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return frontMatter, "", 0, fmt.Errorf("%w: missing closing '---'", ErrInvalidFrontMatter)
	}

	endIndex += 4

	header := content[4:endIndex]
	rest := content[endIndex+4:]

	// the closing delimiter line ends with its own newline
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && strings.TrimSpace(rest[:nl]) == "" {
		rest = rest[nl+1:]
	} else if strings.TrimSpace(rest) == "" {
		rest = ""
	}

	if err := yaml.Unmarshal([]byte(header), &frontMatter); err != nil {
		return FrontMatter{}, "", 0, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	lines := strings.Count(content[:len(content)-len(rest)], "\n")

	return frontMatter, rest, lines, nil
}
