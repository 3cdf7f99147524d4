package kernel_test

import (
	"encoding/json"
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
	assert.True(t, id1.IsEqual(id1))
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	for _, in := range []string{
		canonical,
		"{550e8400-e29b-41d4-a716-446655440000}",
		"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
		"550e8400e29b41d4a716446655440000",
	} {
		t.Run(in, func(t *testing.T) {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	id, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.True(t, original.IsEqual(id))

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Validate_ZeroValue(t *testing.T) {
	var id kernel.UUID

	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_MarshalJSON(t *testing.T) {
	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)

	data, err := json.Marshal(struct {
		ID kernel.UUID `json:"id"`
	}{ID: id})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"550e8400-e29b-41d4-a716-446655440000"}`, string(data))
}
