package exported

import (
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/account"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/token"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/vault"
	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
)

func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		account.Actor{},
		vault.Actor{},
		token.Actor{},
	}
}
