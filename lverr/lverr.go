package lverr

import "github.com/Southclaws/fault/fmsg"

type (
	// ErrMsg carries an error through the Bubble Tea event loop.
	ErrMsg struct {
		Err error
	}
)

func (m ErrMsg) Error() string {
	return m.Err.Error()
}

func (m ErrMsg) Unwrap() error {
	return m.Err
}

// Issue is the message shown to the user: the description attached with fmsg if there is
// one, the error text otherwise.
func (m ErrMsg) Issue() string {
	if issue := fmsg.GetIssue(m.Err); issue != "" {
		return issue
	}
	return m.Err.Error()
}
