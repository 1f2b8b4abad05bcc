package prompt

import (
	// Stdlib
	"errors"
	"os"

	// Internal
	"github.com/donaldpiret/github-pivotal-flow/log"
)

// IsCanceled returns true when err was caused by the user canceling a prompt.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Canceled prints the cancel message and exits.
func Canceled() {
	log.Println("\nOperation canceled. You are welcome to come back any time!")
	os.Exit(1)
}
