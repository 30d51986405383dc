package vault

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
)

// TimestampSec is a point in time, or a duration, in seconds. Schedules are configured in seconds
// while block timestamps are nanoseconds.
type TimestampSec = uint64

// ToNano converts seconds to a block timestamp.
func ToNano(ts TimestampSec) runtime.Timestamp {
	return runtime.Timestamp(ts * builtin.NanosecondsInSecond)
}

// Version reported by ContractMetadata.
const ContractVersion = "1.0.0"

// Deposit attached to every outbound token transfer.
var TransferDeposit = token.TransferDeposit

// Memo attached to claim transfers: claimed amount, then the vault address.
const MemoFormat = "Claiming unlocked %v balance from %v"

func claimMemo(amount abi.TokenAmount, vault addr.Address) string {
	return fmt.Sprintf(MemoFormat, amount, vault)
}

// Page size used by ListAccounts when the caller passes no limit.
const DefaultListLimit = 100

// Largest page ListAccounts will return.
const MaxListLimit = 1000

// Bitwidth of the accounts HAMT.
const AccountsHamtBitwidth = builtin.DefaultHamtBitwidth

// Bitwidth of the insertion-ordered account index.
const AccountIndexAmtBitwidth = builtin.DefaultAmtBitwidth
