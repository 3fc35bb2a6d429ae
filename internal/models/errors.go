package models

// ErrorKind classifies marketplace errors for callers and the HTTP layer
type ErrorKind int

const (
	// KindAuthorization means the caller lacks a capability or ownership
	KindAuthorization ErrorKind = iota + 1
	// KindValidation means the caller must correct the input and retry
	KindValidation
	// KindStateConflict means the caller must re-query current state before retrying
	KindStateConflict
	// KindExternalDependency means the asset registry or payout sink rejected the operation
	KindExternalDependency
	// KindAccountingInvariant means the ledger detected an internal inconsistency; treated as fatal
	KindAccountingInvariant
)

// MarketError is the error type returned by all marketplace operations
type MarketError struct {
	Kind    ErrorKind `json:"-"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *MarketError) Error() string {
	return e.Message
}

// Marketplace error values. Handlers map the kind to an HTTP status.
var (
	ErrUnauthorized       = &MarketError{KindAuthorization, "Unauthorized", "caller lacks the required capability"}
	ErrNotOwner           = &MarketError{KindAuthorization, "NotOwner", "caller is neither the owner nor an approved operator for the asset"}
	ErrInvalidQuantity    = &MarketError{KindValidation, "InvalidQuantity", "quantity must be at least 1"}
	ErrInvalidRoyalty     = &MarketError{KindValidation, "InvalidRoyalty", "royalty percentage must be between 0 and 100"}
	ErrIncorrectFee       = &MarketError{KindValidation, "IncorrectFee", "paid value does not match the required fee exactly"}
	ErrEmptyURI           = &MarketError{KindValidation, "InvalidURI", "token URI must not be empty"}
	ErrInvalidPrice       = &MarketError{KindValidation, "InvalidPrice", "price must be greater than zero"}
	ErrInvalidFeePercent  = &MarketError{KindValidation, "InvalidFeePercent", "platform fee percentage must be between 0 and 100"}
	ErrInvalidAmount      = &MarketError{KindValidation, "InvalidAmount", "amount must be a non-negative multiple of the base unit"}
	ErrInvalidRole        = &MarketError{KindValidation, "InvalidRole", "unrecognized role"}
	ErrInvalidAccount     = &MarketError{KindValidation, "InvalidAccount", "account must not be empty"}
	ErrWrongPaymentAmount = &MarketError{KindValidation, "WrongPaymentAmount", "paid value does not match the listing price exactly"}
	ErrAssetNotFound      = &MarketError{KindValidation, "AssetNotFound", "asset does not exist"}
	ErrAlreadyListed      = &MarketError{KindStateConflict, "AlreadyListed", "asset already has an active listing"}
	ErrInvalidState       = &MarketError{KindStateConflict, "InvalidState", "listing is not active"}
	ErrItemNotAvailable   = &MarketError{KindStateConflict, "ItemNotAvailable", "listing is not available for purchase"}
	ErrNothingToWithdraw  = &MarketError{KindStateConflict, "NothingToWithdraw", "no pending balance to withdraw"}
	ErrFeeExceedsPrice    = &MarketError{KindStateConflict, "FeeExceedsPrice", "platform fee and royalty together exceed the sale price"}
	ErrMintRejected       = &MarketError{KindExternalDependency, "MintRejected", "asset registry rejected the mint"}
	ErrTransferRejected   = &MarketError{KindExternalDependency, "TransferRejected", "asset registry rejected the transfer"}
	ErrPayoutRejected     = &MarketError{KindExternalDependency, "PayoutRejected", "outbound value transfer was rejected"}
	ErrAccountingBroken   = &MarketError{KindAccountingInvariant, "AccountingInvariant", "ledger accounting invariant violated"}
)
