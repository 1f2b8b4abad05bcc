package hooks

import (
	// Stdlib
	"fmt"
	"regexp"
	"strings"
)

const diffSeparator = "# ------------------------ >8 ------------------------"

// AddStoryReference appends [#<storyId>] to the commit message.
// Messages referencing the story already are returned unchanged.
// The reference goes right above the comment lines git adds.
func AddStoryReference(message, storyId string) string {
	reference := regexp.MustCompile(`#` + regexp.QuoteMeta(storyId) + `\b`)

	lines := strings.Split(message, "\n")
	end := len(lines)
	for i, line := range lines {
		if line == diffSeparator || strings.HasPrefix(line, "#") {
			end = i
			break
		}
		if reference.MatchString(line) {
			return message
		}
	}

	content := strings.TrimRight(strings.Join(lines[:end], "\n"), "\n \t")
	tail := strings.Join(lines[end:], "\n")

	var b strings.Builder
	b.WriteString(content)
	fmt.Fprintf(&b, "\n\n[#%v]\n", storyId)
	if tail != "" {
		b.WriteString(tail)
	}
	return b.String()
}
