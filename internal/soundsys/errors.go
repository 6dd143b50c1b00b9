package soundsys

import (
	"errors"
	"fmt"
)

var (
	ErrBadClassName      = errors.New("phoneme class name must be a single character")
	ErrBadRule           = errors.New("invalid word rule")
	ErrMisplacedRepeat   = errors.New("misplaced '!' option: in non-duplicate environment")
	ErrRepeatLiteral     = errors.New("use of '!' here makes no sense")
	ErrRepeatUnsatisfied = errors.New("'!' cannot draw a different phoneme")
	ErrBadRandomRate     = errors.New("random rate must be between 0 and 100")
	ErrNoRules           = errors.New("no word rules defined")
	ErrNoFeatureTable    = errors.New("assimilation needs std-ipa-features or std-digraph-features")
	ErrBadCount          = errors.New("word count must not be negative")
)

// ExhaustedError is returned when generation stops finding new words,
// usually because the rules cannot produce as many distinct words as
// were requested.
type ExhaustedError struct {
	Requested int
	Produced  int
	Attempts  int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: produced %d of %d unique words",
		e.Attempts, e.Produced, e.Requested)
}
