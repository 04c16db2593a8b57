package calc

import (
	"fmt"
	"strings"
)

// ValidationErrors collects every input violation found before a calculation
// runs. Callers can render the whole list at once instead of fixing inputs one
// error at a time.
type ValidationErrors []string

// Error implements the error interface
func (e ValidationErrors) Error() string {
	return strings.Join(e, "; ")
}

// Messages returns the individual violation messages
func (e ValidationErrors) Messages() []string {
	return []string(e)
}

// addf appends a formatted violation message
func (e *ValidationErrors) addf(format string, args ...interface{}) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

// orNil returns the collected errors as an error, or nil when empty
func (e ValidationErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
