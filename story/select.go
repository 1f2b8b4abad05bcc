package story

import (
	// Stdlib
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/errs"
	"github.com/donaldpiret/github-pivotal-flow/prompt"
)

// DefaultLimit is the number of stories offered to choose from.
const DefaultLimit = 5

var ErrNoCandidates = errors.New("there are no stories to be started")

var digitsRegexp = regexp.MustCompile(`[0-9]`)

// Select picks the story to start. The filter is either a story id,
// a story type to offer stories of that type, or empty to offer
// features and bugs. A single candidate is selected right away.
func Select(ctx context.Context, tracker Tracker, chooser prompt.ChoicePresenter, filter string, limit int) (*Story, error) {
	filter = strings.TrimSpace(filter)
	if digitsRegexp.MatchString(filter) {
		task := fmt.Sprintf("Select story '%v'", filter)
		id, err := strconv.Atoi(strings.TrimPrefix(filter, "#"))
		if err != nil {
			return nil, errs.NewError(task, fmt.Errorf("invalid story id: %v", filter))
		}
		return Get(ctx, tracker, id)
	}

	task := "Select a story to start"
	var types []string
	if filter != "" {
		types = []string{filter}
	}
	records, err := tracker.CandidateStories(ctx, types, limit)
	if err != nil {
		return nil, errs.NewError(task, err)
	}

	switch len(records) {
	case 0:
		return nil, errs.NewError(task, ErrNoCandidates)
	case 1:
		return New(records[0], tracker), nil
	}

	choices := make([]prompt.Choice, 0, len(records))
	for _, record := range records {
		title := record.Name
		if filter == "" {
			title = fmt.Sprintf("%-7s %s", strings.ToUpper(record.Type), record.Name)
		}
		choices = append(choices, prompt.Choice{
			Id:    strconv.Itoa(record.Id),
			Title: title,
		})
	}

	index, err := chooser.Choose("Choose story to start:", choices)
	if err != nil {
		return nil, errs.NewError(task, err)
	}
	return New(records[index], tracker), nil
}
