package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

// Method number at which every token receiver exports its transfer hook.
// The token actor invokes it on the receiver of a TransferCall.
const MethodOnTokenReceived = abi.MethodNum(5)

var MethodsVault = struct {
	Constructor      abi.MethodNum
	Claim            abi.MethodNum
	AfterTransfer    abi.MethodNum
	AddAccount       abi.MethodNum
	OnTokenReceived  abi.MethodNum
	SetOwner         abi.MethodNum
	GetOwner         abi.MethodNum
	ContractMetadata abi.MethodNum
	GetAccount       abi.MethodNum
	ListAccounts     abi.MethodNum
	Migrate          abi.MethodNum
}{MethodConstructor, 2, 3, 4, MethodOnTokenReceived, 6, 7, 8, 9, 10, 11}

var MethodsToken = struct {
	Constructor     abi.MethodNum
	Mint            abi.MethodNum
	Register        abi.MethodNum
	Transfer        abi.MethodNum
	TransferCall    abi.MethodNum
	ResolveTransfer abi.MethodNum
	BalanceOf       abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7}
