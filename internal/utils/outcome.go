package utils

// Reason says why a mutating operation did not apply. The zero value means it did.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNotFound      Reason = "NOT_FOUND"
	ReasonActorMismatch Reason = "ACTOR_MISMATCH"
	ReasonInvalidState  Reason = "INVALID_STATE"
	ReasonStorage       Reason = "STORAGE"
)

// Outcome is the result of a state-changing operation. Ordinary precondition failures
// (wrong actor, wrong state, missing entity) are reported here rather than as errors,
// and are always safe to retry once the precondition holds.
type Outcome struct {
	OK     bool   `json:"ok"`
	Reason Reason `json:"reason,omitempty"`
	Err    error  `json:"-"`
}

func Ok() Outcome { return Outcome{OK: true} }

func Fail(r Reason) Outcome { return Outcome{Reason: r} }

func StorageFailure(err error) Outcome { return Outcome{Reason: ReasonStorage, Err: err} }

// AsError converts a failed outcome into an AppError for transport layers; nil when OK.
func (o Outcome) AsError(op string) error {
	if o.OK {
		return nil
	}
	return E(CodeForReason(o.Reason, o.Err), op, messageForReason(o.Reason), o.Err)
}
