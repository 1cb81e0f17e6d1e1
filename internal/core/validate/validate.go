// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// MaxTaskNameLen is the longest task name accepted, in runes.
const MaxTaskNameLen = 64

// ErrEmptyName is returned for names that are blank after trimming.
var ErrEmptyName = errors.New("name is required")

// TaskName validates a library task name: non-blank, at most
// MaxTaskNameLen runes, no path separators or control characters.
func TaskName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxTaskNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxTaskNameLen)
	}
	if strings.ContainsAny(name, `/\`) {
		return errors.New("name must not contain path separators")
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return errors.New("name must not contain control characters")
	}
	return nil
}

// TaskNameField returns a criterio validator for task names.
func TaskNameField(field, name string) error {
	return criterio.Run(field, name, TaskName)
}
