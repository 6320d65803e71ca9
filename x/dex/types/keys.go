package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName
)

// Store key prefixes
var (
	ParamsKey       = []byte{0x00} // key for module parameters
	PoolKeyPrefix   = []byte{0x01} // prefix for pool records
	PoolCountKey    = []byte{0x02} // key for the pool id counter
	PairIndexPrefix = []byte{0x03} // prefix for pool lookup by token pair
	SharesPrefix    = []byte{0x04} // prefix for LP share balances
	AllowancePrefix = []byte{0x05} // prefix for LP share allowances
	LockPrefix      = []byte{0x06} // prefix for per-pool reentrancy locks
)

// SortDenoms returns the two denoms in canonical pool order. The order is the
// plain bytewise order over the denom strings; it fixes which side of a pool
// is token0 and carries no meaning about asset value.
func SortDenoms(denomA, denomB string) (string, string) {
	if denomA > denomB {
		return denomB, denomA
	}
	return denomA, denomB
}

// PoolKey returns the store key for a pool record
func PoolKey(poolID uint64) []byte {
	return append(PoolKeyPrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// PairIndexKey returns the store key indexing a pool by its token pair.
// The pair is normalised to canonical order so lookups are order-independent.
func PairIndexKey(denomA, denomB string) []byte {
	t0, t1 := SortDenoms(denomA, denomB)
	key := append(PairIndexPrefix, []byte(t0)...)
	key = append(key, byte('/'))
	return append(key, []byte(t1)...)
}

// SharesKey returns the store key for a holder's LP share balance in a pool
func SharesKey(poolID uint64, holder sdk.AccAddress) []byte {
	key := append(SharesPrefix, sdk.Uint64ToBigEndian(poolID)...)
	return append(key, holder.Bytes()...)
}

// SharesPoolPrefix returns the prefix covering all share balances of a pool
func SharesPoolPrefix(poolID uint64) []byte {
	return append(SharesPrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// AllowancePoolPrefix returns the prefix covering all allowances of a pool
func AllowancePoolPrefix(poolID uint64) []byte {
	return append(AllowancePrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// AllowanceKey returns the store key for an LP share allowance
func AllowanceKey(poolID uint64, owner, spender sdk.AccAddress) []byte {
	key := append(AllowancePrefix, sdk.Uint64ToBigEndian(poolID)...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}

// LockKey returns the store key for a pool's reentrancy lock
func LockKey(poolID uint64) []byte {
	return append(LockPrefix, sdk.Uint64ToBigEndian(poolID)...)
}

// PoolAddress derives the account that holds a pool's reserves. Each pool
// gets its own sub-account so token balances can be read back per pool.
func PoolAddress(poolID uint64) sdk.AccAddress {
	return address.Module(ModuleName, sdk.Uint64ToBigEndian(poolID))
}

// LockedSharesAddress is the dead position holding the minimum liquidity
// burned on a pool's first mint. Nothing can spend from it, so a pool's share
// supply never returns to zero.
var LockedSharesAddress = sdk.AccAddress(address.Module(ModuleName, []byte("locked_shares")))
