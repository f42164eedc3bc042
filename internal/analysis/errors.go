package analysis

import "fmt"

// InsufficientDataError reports that a test cannot run on the given sample.
type InsufficientDataError struct {
	Test string
	// Unit is what was counted: "pairs", "groups", "observations" or "cells".
	Unit string
	Need int
	Got  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: insufficient data: need at least %d %s, got %d", e.Test, e.Need, e.Unit, e.Got)
}
