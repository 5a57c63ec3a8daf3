package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func actor(id uint) *uint { return &id }

func TestStamp_CreateSetsBothStamps(t *testing.T) {
	payload := map[string]interface{}{"name": "thing"}

	Stamp(payload, actor(7), OpCreate)

	assert.Equal(t, uint(7), payload["created_by"])
	assert.Equal(t, uint(7), payload["updated_by"])
}

func TestStamp_CreateAnonymousLeavesStampsUnset(t *testing.T) {
	payload := map[string]interface{}{"name": "thing"}

	Stamp(payload, nil, OpCreate)

	assert.NotContains(t, payload, "created_by")
	assert.NotContains(t, payload, "updated_by")
}

func TestStamp_UpdateNeverTouchesCreatedBy(t *testing.T) {
	payload := map[string]interface{}{"name": "thing", "created_by": uint(1)}

	Stamp(payload, actor(9), OpUpdate)

	assert.NotContains(t, payload, "created_by")
	assert.Equal(t, uint(9), payload["updated_by"])
}

func TestStamp_UpdateAlwaysOverwritesUpdatedBy(t *testing.T) {
	payload := map[string]interface{}{"updated_by": uint(3)}

	Stamp(payload, actor(4), OpUpdate)
	assert.Equal(t, uint(4), payload["updated_by"])

	Stamp(payload, nil, OpUpdate)
	val, present := payload["updated_by"]
	assert.True(t, present)
	assert.Nil(t, val)
}
