package mock

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainstems/intellex-vesting-contracts/actors/runtime"
)

// CheckActorExports checks that every exported method of an actor has the shape the VM can dispatch.
func CheckActorExports(t *testing.T, act runtime.VMActor) {
	exports := act.Exports()
	require.NotEmpty(t, exports, "actor exports no methods")
	for i, m := range exports {
		if i == 0 { // Send is implicit
			assert.Nil(t, m, "method 0 is reserved for value transfer")
			continue
		}
		if m == nil {
			continue
		}
		meth := reflect.ValueOf(m)
		mt := meth.Type()
		assert.Equal(t, reflect.Func, mt.Kind(), "method %d is not a function", i)
		if !assert.Equal(t, 2, mt.NumIn(), "method %d must have two parameters", i) {
			continue
		}
		assert.Equal(t, typeOfRuntimeInterface, mt.In(0), "method %d first parameter must be runtime", i)
		assert.Equal(t, reflect.Ptr, mt.In(1).Kind(), "method %d params must be a pointer", i)
		assert.True(t, mt.In(1).Implements(typeOfCborUnmarshaler), "method %d params must unmarshal from CBOR", i)
		if assert.Equal(t, 1, mt.NumOut(), "method %d must return a single value", i) {
			assert.True(t, mt.Out(0).Implements(typeOfCborMarshaler), "method %d must return a CBOR-marshalable value", i)
		}
	}
}
