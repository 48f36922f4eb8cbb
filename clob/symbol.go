package clob

// Symbol contains basic info and trading rules of a market pair.
// Prices are denominated in the quote currency for one whole unit of the base
// currency, both scaled by their native decimals, so the quote notional of a
// base quantity at a price is quantity * price / 10^baseDecimals.
type Symbol struct {
	id            uint32
	name          string
	baseCurrency  string
	quoteCurrency string

	baseScale Uint // 10^baseDecimals

	priceTick        Uint // minimum price increment for limit orders
	minOrderNotional Uint // minimum order size, in quote currency
	minTradeAmount   Uint // minimum trade amount, in base currency
}

// NewSymbol creates a new symbol with the given identity and trading rules.
func NewSymbol(
	id uint32,
	name string,
	baseCurrency string,
	quoteCurrency string,
	baseDecimals uint32,
	priceTick Uint,
	minOrderNotional Uint,
	minTradeAmount Uint,
) Symbol {
	return Symbol{
		id:               id,
		name:             name,
		baseCurrency:     baseCurrency,
		quoteCurrency:    quoteCurrency,
		baseScale:        pow10(baseDecimals),
		priceTick:        priceTick,
		minOrderNotional: minOrderNotional,
		minTradeAmount:   minTradeAmount,
	}
}

// ID returns the symbol ID.
func (s Symbol) ID() uint32 {
	return s.id
}

// Name returns the symbol name.
func (s Symbol) Name() string {
	return s.name
}

// BaseCurrency returns the base currency code.
func (s Symbol) BaseCurrency() string {
	return s.baseCurrency
}

// QuoteCurrency returns the quote currency code.
func (s Symbol) QuoteCurrency() string {
	return s.quoteCurrency
}

// PriceTick returns the minimum price increment.
func (s Symbol) PriceTick() Uint {
	return s.priceTick
}

// MinOrderNotional returns the minimum order size in quote currency.
func (s Symbol) MinOrderNotional() Uint {
	return s.minOrderNotional
}

// MinTradeAmount returns the minimum trade amount in base currency.
func (s Symbol) MinTradeAmount() Uint {
	return s.minTradeAmount
}

// Valid reports whether the symbol is fully specified.
func (s Symbol) Valid() bool {
	return s.baseCurrency != "" &&
		s.quoteCurrency != "" &&
		s.baseCurrency != s.quoteCurrency &&
		!s.baseScale.IsZero() &&
		!s.priceTick.IsZero()
}

// Notional converts a base quantity to its quote currency value at the given
// price, truncating the remainder.
func (s Symbol) Notional(quantity Uint, price Uint) Uint {
	notional, _ := quantity.Mul(price).QuoRem(s.baseScale)
	return notional
}

// BaseQuantity converts a quote amount to the base quantity purchasable at
// the given price, truncating the remainder.
func (s Symbol) BaseQuantity(quote Uint, price Uint) Uint {
	quantity, _ := quote.Mul(s.baseScale).QuoRem(price)
	return quantity
}

func pow10(decimals uint32) Uint {
	scale := NewUint(1)
	for i := uint32(0); i < decimals; i++ {
		scale = scale.Mul64(10)
	}
	return scale
}
