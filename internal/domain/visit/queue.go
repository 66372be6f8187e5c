package visit

import (
	"regexp"
	"strings"

	"github.com/veasna/clinic/internal/platform/apperr"
)

// Queue tokens are handed out on paper slips: a number, optionally suffixed
// with letters for families sharing a slot ("2", "2A", "102B").
var queueTokenPattern = regexp.MustCompile(`^[0-9]+[A-Z]*$`)

// NormalizeQueueToken trims and uppercases raw, then validates it against the
// token grammar. Blank or malformed tokens are invalid: a visit without a
// queue assignment is meaningless in this workflow.
func NormalizeQueueToken(raw string) (string, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return "", apperr.InvalidField("queue_no", `queue_no is required (e.g. "2A", "3")`)
	}
	if !queueTokenPattern.MatchString(token) {
		return "", apperr.InvalidField("queue_no",
			"queue_no must be digits optionally followed by letters, e.g. \"2\" or \"2A\"")
	}
	return token, nil
}
