package main

import (
	"errors"
	"fmt"

	clob "github.com/scalex-dex/clob-engine/clob"
)

var errInsufficientBalance = errors.New("insufficient balance")

// memLedger is a minimal in-memory ledger for the simulator. It keeps
// available and locked balances per (trader, currency) and retains collected
// fees so the final report can show them.
type memLedger struct {
	available map[string]clob.Uint
	locked    map[string]clob.Uint

	feeMaker clob.Uint
	feeTaker clob.Uint
	feeUnit  clob.Uint

	collectedFees map[string]clob.Uint
}

func newMemLedger(feeMaker, feeTaker uint64) *memLedger {
	return &memLedger{
		available:     make(map[string]clob.Uint),
		locked:        make(map[string]clob.Uint),
		feeMaker:      clob.NewUint(feeMaker),
		feeTaker:      clob.NewUint(feeTaker),
		feeUnit:       clob.NewUint(10000),
		collectedFees: make(map[string]clob.Uint),
	}
}

func balanceKey(trader, currency string) string {
	return trader + "/" + currency
}

func (l *memLedger) Deposit(trader, currency string, amount clob.Uint) {
	k := balanceKey(trader, currency)
	l.available[k] = l.available[k].Add(amount)
}

func (l *memLedger) Lock(trader, currency string, amount clob.Uint) error {
	k := balanceKey(trader, currency)
	if l.available[k].LessThan(amount) {
		return fmt.Errorf("%w: %s %s", errInsufficientBalance, trader, currency)
	}
	l.available[k] = l.available[k].Sub(amount)
	l.locked[k] = l.locked[k].Add(amount)
	return nil
}

func (l *memLedger) Unlock(trader, currency string, amount clob.Uint) error {
	k := balanceKey(trader, currency)
	if l.locked[k].LessThan(amount) {
		return fmt.Errorf("%w: locked %s %s", errInsufficientBalance, trader, currency)
	}
	l.locked[k] = l.locked[k].Sub(amount)
	l.available[k] = l.available[k].Add(amount)
	return nil
}

func (l *memLedger) TransferFrom(payer, payee, currency string, amount clob.Uint) error {
	pk := balanceKey(payer, currency)
	if l.available[pk].LessThan(amount) {
		return fmt.Errorf("%w: %s %s", errInsufficientBalance, payer, currency)
	}
	l.available[pk] = l.available[pk].Sub(amount)
	l.credit(payee, currency, amount, l.feeMaker)
	return nil
}

func (l *memLedger) TransferLockedFrom(payer, payee, currency string, amount clob.Uint) error {
	pk := balanceKey(payer, currency)
	if l.locked[pk].LessThan(amount) {
		return fmt.Errorf("%w: locked %s %s", errInsufficientBalance, payer, currency)
	}
	l.locked[pk] = l.locked[pk].Sub(amount)
	l.credit(payee, currency, amount, l.feeTaker)
	return nil
}

func (l *memLedger) credit(payee, currency string, amount, feeRate clob.Uint) {
	fee, _ := amount.Mul(feeRate).QuoRem(l.feeUnit)
	l.collectedFees[currency] = l.collectedFees[currency].Add(fee)
	k := balanceKey(payee, currency)
	l.available[k] = l.available[k].Add(amount.Sub(fee))
}

func (l *memLedger) GetBalance(trader, currency string) (clob.Uint, error) {
	return l.available[balanceKey(trader, currency)], nil
}

func (l *memLedger) FeeMaker() clob.Uint { return l.feeMaker }
func (l *memLedger) FeeTaker() clob.Uint { return l.feeTaker }
func (l *memLedger) FeeUnit() clob.Uint  { return l.feeUnit }
