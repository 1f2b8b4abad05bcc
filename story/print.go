package story

import (
	// Stdlib
	"fmt"
	"io"
	"os"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/modules/pivotaltracker"

	// Vendor
	"golang.org/x/term"
)

const (
	labelTitle       = "Title"
	labelDescription = "Description"

	labelWidth = len(labelDescription) + 2

	defaultTerminalWidth = 80
)

// PrettyPrint prints the story title, description and notes.
// Values are word-wrapped to fit next to the right-aligned labels.
func PrettyPrint(w io.Writer, story *Story, notes []*pivotaltracker.Comment) {
	contentWidth := terminalWidth(w) - labelWidth

	printField(w, labelTitle, story.Name(), contentWidth)
	if description := story.Description(); description != "" {
		printField(w, labelDescription, description, contentWidth)
	}
	for i, note := range notes {
		printField(w, fmt.Sprintf("Note %v", i+1), note.Text, contentWidth)
	}
	fmt.Fprintln(w)
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > labelWidth+10 {
			return width
		}
	}
	return defaultTerminalWidth
}

func printField(w io.Writer, label, value string, width int) {
	fmt.Fprintf(w, "%*s", labelWidth, label+": ")
	lines := wrap(value, width)
	if len(lines) == 0 {
		fmt.Fprintln(w)
		return
	}
	for i, line := range lines {
		if i != 0 {
			fmt.Fprint(w, strings.Repeat(" ", labelWidth))
		}
		fmt.Fprintln(w, line)
	}
}

// wrap splits the text into lines no longer than width.
// Line breaks in the text are kept, words longer than width are kept whole.
func wrap(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(strings.TrimSpace(text), "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			if len(lines) != 0 {
				lines = append(lines, "")
			}
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
