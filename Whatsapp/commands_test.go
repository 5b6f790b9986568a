package Whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpenseCommand(t *testing.T) {
	cmd, err := ParseCommand("expense 250 fuel truck ABC-123 filled up at the depot")
	require.NoError(t, err)
	assert.Equal(t, "expense", cmd.Action)
	assert.Equal(t, 250.0, cmd.Amount)
	assert.Equal(t, "fuel", cmd.Category)
	assert.Equal(t, "ABC-123", cmd.Plate)
	assert.Equal(t, "filled up at the depot", cmd.Notes)
}

func TestParseExpenseMinimal(t *testing.T) {
	cmd, err := ParseCommand("expense 75.50")
	require.NoError(t, err)
	assert.Equal(t, 75.50, cmd.Amount)
	assert.Equal(t, "other", cmd.Category)
	assert.Empty(t, cmd.Plate)
	assert.Empty(t, cmd.Notes)
}

func TestParseExpenseWithoutPlate(t *testing.T) {
	cmd, err := ParseCommand("exp 120 tolls bridge crossing")
	require.NoError(t, err)
	assert.Equal(t, "tolls", cmd.Category)
	assert.Empty(t, cmd.Plate)
	assert.Equal(t, "bridge crossing", cmd.Notes)
}

func TestParseUnknownCategoryGoesToNotes(t *testing.T) {
	cmd, err := ParseCommand("expense 40 snacks for the crew")
	require.NoError(t, err)
	assert.Equal(t, "other", cmd.Category)
	assert.Equal(t, "snacks for the crew", cmd.Notes)
}

func TestParseRejectsBadAmount(t *testing.T) {
	_, err := ParseCommand("expense fuel 250")
	assert.ErrorIs(t, err, ErrBadAmount)

	_, err = ParseCommand("expense -10 fuel")
	assert.ErrorIs(t, err, ErrBadAmount)

	_, err = ParseCommand("expense")
	assert.ErrorIs(t, err, ErrBadAmount)
}

func TestParseRejectsUnknownCommand(t *testing.T) {
	_, err := ParseCommand("refuel 250")
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = ParseCommand("   ")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParseHelp(t *testing.T) {
	cmd, err := ParseCommand("HELP")
	require.NoError(t, err)
	assert.Equal(t, "help", cmd.Action)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "201001234567", normalizePhone("201001234567@s.whatsapp.net"))
	assert.Equal(t, "201001234567", normalizePhone("+20 100 123-4567"))
	assert.Equal(t, "201001234567", normalizePhone("201001234567"))
}
