package prompt

import (
	// Stdlib
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
)

// maxTitleColumnWidth is the width the title column is truncated to.
const maxTitleColumnWidth = 80

var ErrNoChoices = errors.New("there is nothing to choose from")

type Choice struct {
	Id    string
	Title string
}

// ChoicePresenter lets the user pick one of the choices.
// It returns the index of the selected choice.
type ChoicePresenter interface {
	Choose(header string, choices []Choice) (int, error)
}

// Choose lists the choices in a table and asks for an index.
// Invalid input is asked for again, empty input cancels.
func (console *Console) Choose(header string, choices []Choice) (int, error) {
	if len(choices) == 0 {
		return 0, ErrNoChoices
	}

	fmt.Fprintln(console.out, header)
	fmt.Fprintln(console.out)
	if err := listChoices(console.out, choices); err != nil {
		return 0, err
	}
	fmt.Fprintln(console.out)

	for {
		index, err := console.PromptIndex("Choose by inserting the index: ", 0, len(choices)-1)
		switch err.(type) {
		case nil:
			return index, nil
		case *InvalidInputError, *OutOfBoundsError:
			fmt.Fprintln(console.out, err)
			continue
		default:
			return 0, err
		}
	}
}

func listChoices(w io.Writer, choices []Choice) error {
	tw := tabwriter.NewWriter(w, 0, 8, 4, '\t', 0)
	io.WriteString(tw, "  Index\tStory ID\tStory Title\n")
	io.WriteString(tw, "  =====\t========\t===========\n")
	for i, choice := range choices {
		fmt.Fprintf(tw, "  %v\t%v\t%v\n", i, choice.Id, Shorten(choice.Title, maxTitleColumnWidth))
	}
	return tw.Flush()
}
