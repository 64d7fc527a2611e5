package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRef_Deterministic(t *testing.T) {
	text := "SBI: Rs.500 debited from A/c XX9012 for UPI/P2M/SWIGGY on 25-Feb."
	assert.Equal(t, MessageRef(text), MessageRef(text))
	assert.NotEqual(t, MessageRef(text), MessageRef(text+" Bal: Rs.10"))
}

func TestMessageRef_NormalizesWhitespace(t *testing.T) {
	assert.Equal(t,
		MessageRef("Rs 500 debited"),
		MessageRef("  Rs  500\r\ndebited\n"),
	)
}

func TestMessageRef_IsVersion5(t *testing.T) {
	u, err := uuid.Parse(MessageRef("hello"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, u.Version())
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", Short("3f2a9c1e-0000-5000-8000-000000000000"))
	assert.Equal(t, "abc", Short("abc"))
}
