package scenario

import "errors"

var (
	// ErrLastSubject is returned when dropping the only subject left.
	ErrLastSubject = errors.New("cannot drop the only remaining subject")
	// ErrUnknownSubject is returned when the subject is not in the baseline.
	ErrUnknownSubject = errors.New("subject not in baseline")
)

type ErrorKind string

const (
	KindLastSubject    ErrorKind = "last_subject"
	KindUnknownSubject ErrorKind = "unknown_subject"
)

// Error is the structured failure of a simulation. The baseline is never
// modified when one is returned.
type Error struct {
	Kind      ErrorKind
	SubjectID string
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match an *Error against the package sentinels.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindLastSubject:
		return target == ErrLastSubject
	case KindUnknownSubject:
		return target == ErrUnknownSubject
	}
	return false
}

func lastSubjectError(id string) *Error {
	return &Error{Kind: KindLastSubject, SubjectID: id, Message: "Cannot drop the only remaining subject."}
}

func unknownSubjectError(id string) *Error {
	return &Error{Kind: KindUnknownSubject, SubjectID: id, Message: "Subject " + id + " is not part of the baseline."}
}
