package session

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationKind names a failed precondition of a transition.
type ValidationKind uint8

const (
	LockerSameAsActive ValidationKind = iota
	InvalidUserLocker
	LockerTooManyPackages
	LockerWeightTooBig
	InvalidUserBranch
	InvalidUserDelivery
	NoCompatBranchDelivery
	NoPackagesSelected
	UnknownRecipient
	MissingRoute
	InvalidInput
	WrongRole
	NothingSelected
)

// ValidationError is a recoverable precondition failure. The session shows
// it in a message popup and leaves navigation where it was.
type ValidationError struct {
	Kind ValidationKind
	// Excess is set for LockerWeightTooBig.
	Excess decimal.Decimal
	// Limit is set for InvalidUserDelivery.
	Limit int
	// Field names the offending input for InvalidInput.
	Field  string
	Detail string
	// Suggestion is the closest known name for UnknownRecipient.
	Suggestion string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case LockerSameAsActive:
		return "the packages are already in that locker"
	case InvalidUserLocker:
		return "that locker does not exist or is not yours"
	case LockerTooManyPackages:
		return "that locker cannot hold that many packages"
	case LockerWeightTooBig:
		return fmt.Sprintf("that locker would exceed its weight limit by %s kg", e.Excess.StringFixed(2))
	case InvalidUserBranch:
		return "that branch does not exist"
	case InvalidUserDelivery:
		return fmt.Sprintf("home delivery takes at most %d packages", e.Limit)
	case NoCompatBranchDelivery:
		return "no branch delivers from this locker's warehouse"
	case NoPackagesSelected:
		return "select at least one package first"
	case UnknownRecipient:
		if e.Suggestion != "" {
			return fmt.Sprintf("unknown recipient %q, did you mean %q?", e.Detail, e.Suggestion)
		}
		return fmt.Sprintf("unknown recipient %q", e.Detail)
	case MissingRoute:
		if e.Detail != "" {
			return e.Detail
		}
		return "no route to the destination branch, check the branch and try again"
	case InvalidInput:
		if e.Detail != "" {
			return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
		}
		return fmt.Sprintf("invalid %s", e.Field)
	case WrongRole:
		return "that screen is not available to this account"
	case NothingSelected:
		return "nothing is selected"
	}
	return fmt.Sprintf("validation failed (%d)", e.Kind)
}

func invalid(kind ValidationKind) *ValidationError {
	return &ValidationError{Kind: kind}
}

func invalidInput(field, detail string) *ValidationError {
	return &ValidationError{Kind: InvalidInput, Field: field, Detail: detail}
}

// logicError aborts on a state the dispatch table does not cover.
func logicError(format string, args ...any) {
	panic(fmt.Sprintf("session: "+format, args...))
}
