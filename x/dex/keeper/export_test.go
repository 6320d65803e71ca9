package keeper

import storetypes "cosmossdk.io/store/types"

// StoreKey exposes the keeper's store key for tests poking at raw state.
func (k Keeper) StoreKey() storetypes.StoreKey { return k.storeKey }
