package uuid_test

import (
	"testing"

	"github.com/kassenbuch/backend/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUnmarshalParam(t *testing.T) {
	var u uuid.UUID

	// Empty parameters bind to the Nil UUID
	assert.NoError(t, u.UnmarshalParam(""))
	assert.Equal(t, uuid.Nil, u)

	assert.NoError(t, u.UnmarshalParam("27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0"))
	assert.Equal(t, "27ee4ba5-3fb8-4e52-9b2f-e51f4543d4b0", u.String())

	assert.Error(t, u.UnmarshalParam("NotAUUID"))
}
