package exported_test

import (
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"

	"github.com/brainstems/intellex-vesting-contracts/actors/builtin"
	"github.com/brainstems/intellex-vesting-contracts/actors/builtin/exported"
	"github.com/brainstems/intellex-vesting-contracts/support/mock"
)

func TestKnownActors(t *testing.T) {
	seen := map[cid.Cid]struct{}{}
	for _, actor := range exported.BuiltinActors() {
		assert.True(t, builtin.IsBuiltinActor(actor.Code()), "unknown code %v", actor.Code())
		_, dup := seen[actor.Code()]
		assert.False(t, dup, "duplicate code %v", builtin.ActorNameByCode(actor.Code()))
		seen[actor.Code()] = struct{}{}

		mock.CheckActorExports(t, actor)
	}
	assert.Len(t, seen, 3)
}
