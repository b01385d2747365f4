package httperr

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindWindowClosed      Kind = "window_closed"
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return string(e.Kind) + ": " + e.Code
}

func ErrBusiness(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func Validation(code string) error        { return ErrBusiness(KindValidation, code) }
func Conflict(code string) error          { return ErrBusiness(KindConflict, code) }
func WindowClosed(code string) error      { return ErrBusiness(KindWindowClosed, code) }
func NotFoundErr(code string) error       { return ErrBusiness(KindNotFound, code) }
func InvalidTransition(code string) error { return ErrBusiness(KindInvalidTransition, code) }

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}
