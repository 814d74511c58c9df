package services

import "github.com/shopspring/decimal"

// Fee schedule. Deposits of 50,000 or more pay a 2% commission; withdrawals
// of 10,000 or more pay a 1% surcharge. Transfers carry no fee.
var (
	depositFeeThreshold     = decimal.NewFromInt(50000)
	depositFeeMultiplier    = decimal.NewFromFloat(0.98)
	withdrawalFeeThreshold  = decimal.NewFromInt(10000)
	withdrawalFeeMultiplier = decimal.NewFromFloat(1.01)
)

// settleDeposit returns the amount actually credited for a requested deposit.
func settleDeposit(requested decimal.Decimal) decimal.Decimal {
	if requested.GreaterThanOrEqual(depositFeeThreshold) {
		return requested.Mul(depositFeeMultiplier)
	}
	return requested
}

// settleWithdrawal returns the amount actually debited for a requested
// withdrawal. The balance sufficiency check uses the requested amount, not
// this settled amount.
func settleWithdrawal(requested decimal.Decimal) decimal.Decimal {
	if requested.GreaterThanOrEqual(withdrawalFeeThreshold) {
		return requested.Mul(withdrawalFeeMultiplier)
	}
	return requested
}
