package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnparseableTime marks interview-time text the parser could not turn
// into an absolute timestamp. The caller skips booking but must still
// notify; this is a real candidate loss worth a loud log line.
var ErrUnparseableTime = errors.New("booking: interview time not parseable")

var timeParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseInterviewTime turns free text like "Thursday, November 20th at 10 AM"
// into an absolute timestamp. Relative words resolve against base; text
// without a timezone inherits base's location. Returns ErrUnparseableTime
// when nothing in the text looks like a time.
func ParseInterviewTime(text string, base time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrUnparseableTime
	}

	r, err := timeParser.Parse(text, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrUnparseableTime, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTime, text)
	}
	return r.Time, nil
}
