package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var AccountActorCodeID cid.Cid
var VaultActorCodeID cid.Cid
var TokenActorCodeID cid.Cid

var builtinActorNames map[cid.Cid]string

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	makeBuiltin := func(s string) cid.Cid {
		c, err := builder.Sum([]byte(s))
		if err != nil {
			panic(err)
		}
		return c
	}

	AccountActorCodeID = makeBuiltin("vesting/1/account")
	VaultActorCodeID = makeBuiltin("vesting/1/vault")
	TokenActorCodeID = makeBuiltin("vesting/1/token")

	builtinActorNames = map[cid.Cid]string{
		AccountActorCodeID: "account",
		VaultActorCodeID:   "vault",
		TokenActorCodeID:   "token",
	}
}

// IsBuiltinActor returns true if the code belongs to an actor defined in this repo.
func IsBuiltinActor(code cid.Cid) bool {
	_, ok := builtinActorNames[code]
	return ok
}

// ActorNameByCode returns the (string) name of the actor given a cid code.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}
	name, ok := builtinActorNames[code]
	if !ok {
		return "<unknown>"
	}
	return name
}
