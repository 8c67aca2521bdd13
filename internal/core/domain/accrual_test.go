package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccrTranID(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	id, err := NewAccrTranID(date, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "S20240115000000001-1", id)
	assert.Len(t, id, 20)

	id, err = NewAccrTranID(date, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "S20240115000000001-2", id)

	// Every valid (seq, row) combination yields exactly 20 characters.
	for _, seq := range []int{1, 42, 999999999} {
		for _, row := range []int{1, 2} {
			id, err := NewAccrTranID(date, seq, row)
			require.NoError(t, err, fmt.Sprintf("seq=%d row=%d", seq, row))
			assert.Len(t, id, 20)
		}
	}
}

func TestNewAccrTranIDBounds(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := NewAccrTranID(date, 0, 1)
	assert.Error(t, err, "sequence below 1 is rejected")

	_, err = NewAccrTranID(date, MaxAccrualSeq+1, 1)
	assert.Error(t, err, "sequence above the 9-digit cap is rejected")

	_, err = NewAccrTranID(date, 1, 3)
	assert.Error(t, err, "row suffix other than 1 or 2 is rejected")
}

func TestAccrTranIDSeq(t *testing.T) {
	seq, err := AccrTranIDSeq("S20240115000000042-2")
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	_, err = AccrTranIDSeq("T20240115000000042-2")
	assert.Error(t, err, "wrong prefix is rejected")

	_, err = AccrTranIDSeq("S2024011500000042-2")
	assert.Error(t, err, "wrong length is rejected")
}
