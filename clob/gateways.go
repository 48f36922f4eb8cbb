package clob

//go:generate mockgen -destination=mocks/gateways.go -package=mockclob . LedgerGateway,LendingGateway,OracleGateway

// LedgerGateway is the balance ledger consulted by the matching engine for
// every lock, unlock and transfer. All amounts are unsigned fixed-point
// integers scaled by each currency's native decimals. The engine reads but
// does not own ledger balances.
//
// Transfers are fee deducting: TransferFrom applies the maker fee schedule
// and TransferLockedFrom applies the taker fee schedule, both expressed as
// fee/FeeUnit of the transferred amount and charged to the payee.
type LedgerGateway interface {
	Lock(trader string, currency string, amount Uint) error
	Unlock(trader string, currency string, amount Uint) error
	TransferFrom(payer string, payee string, currency string, amount Uint) error
	TransferLockedFrom(payer string, payee string, currency string, amount Uint) error
	GetBalance(trader string, currency string) (Uint, error)

	FeeMaker() Uint
	FeeTaker() Uint
	FeeUnit() Uint
}

// LendingGateway is the optional credit line consulted around order placement
// and fills. All calls except ValidateAndBorrowIfNeeded are best effort: a
// failure only skips the corresponding side effect.
type LendingGateway interface {
	// ValidateAndBorrowIfNeeded tops up the trader's available balance of the
	// given currency up to the required amount, borrowing the shortfall when
	// autoBorrow is enabled. It returns the amount borrowed.
	ValidateAndBorrowIfNeeded(trader string, currency string, required Uint, autoBorrow bool) (Uint, error)

	// ValidateBalanceOnly checks collateral sufficiency without borrowing,
	// used for market orders where borrowing is deferred to match time.
	ValidateBalanceOnly(trader string, currency string, required Uint) error

	// GetUserDebt returns the trader's outstanding debt in the given token.
	GetUserDebt(trader string, token string) (Uint, error)

	// RepayFromSyntheticBalance repays debt in the underlying token from the
	// trader's synthetic token balance.
	RepayFromSyntheticBalance(trader string, syntheticToken string, underlyingToken string, amount Uint) error
}

// OracleGateway is the optional price oracle fed with trade prints.
type OracleGateway interface {
	// UpdatePriceFromTrade forwards a trade print, called once per fill whose
	// executed quantity meets the symbol's minimum trade amount.
	UpdatePriceFromTrade(baseToken string, price Uint, volume Uint) error
}
