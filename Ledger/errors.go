package Ledger

// Error kinds reported by ledger operations. Controllers map these onto HTTP
// statuses; the ledger itself never sees a transport.
const (
	KindValidation     = "ValidationError"
	KindNotFound       = "NotFound"
	KindExceedsBalance = "PaymentExceedsBalance"
)

// Error is a ledger rule violation. All ledger failures are deterministic
// input rejections, so none of them are retryable.
type Error struct {
	Kind      string  `json:"kind"`
	Message   string  `json:"message"`
	Remaining float64 `json:"remaining_balance,omitempty"` // set for PaymentExceedsBalance
}

func (e *Error) Error() string {
	return e.Message
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func exceedsBalanceError(msg string, remaining float64) *Error {
	return &Error{Kind: KindExceedsBalance, Message: msg, Remaining: remaining}
}

// AsLedgerError unwraps err into *Error when it carries a ledger kind.
func AsLedgerError(err error) (*Error, bool) {
	le, ok := err.(*Error)
	return le, ok
}
