/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_pokPayload(t *testing.T) {
	payload := NewPoKPayload(4, []int{0, 2})
	require.Equal(t, 3, payload.LenInBytes())

	bytes, err := payload.ToBytes()
	require.NoError(t, err)
	require.Len(t, bytes, 3)
	require.Equal(t, []byte{0, 4, 0b101}, bytes)

	payloadParsed, err := ParsePoKPayload(bytes)
	require.NoError(t, err)
	require.Equal(t, payload, payloadParsed)
	require.Equal(t, 4, payloadParsed.MessagesCount())

	payloadParsed, err = ParsePoKPayload([]byte{})
	require.Error(t, err)
	require.Nil(t, payloadParsed)

	payloadParsed, err = ParsePoKPayload([]byte{9, 0})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformedProof)
	require.Nil(t, payloadParsed)

	_, err = NewPoKPayload(1, []int{9}).ToBytes()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	require.Contains(t, err.Error(), "invalid size of PoK payload")
}

func Test_pokPayloadBitvector(t *testing.T) {
	t.Run("reversed byte order", func(t *testing.T) {
		bytes, err := NewPoKPayload(10, []int{0, 9}).ToBytes()
		require.NoError(t, err)

		// bit 9 lives in the second bitvector byte, which is stored first
		require.Equal(t, []byte{0, 10, 0b10, 0b1}, bytes)

		payload, err := ParsePoKPayload(bytes)
		require.NoError(t, err)
		require.Equal(t, []int{0, 9}, payload.Revealed)
	})

	t.Run("round trip over capacities", func(t *testing.T) {
		for _, count := range []int{1, 7, 8, 9, 16, 100, MaxMessagesCount} {
			revealed := []int{0, count / 2, count - 1}
			if count < 3 {
				revealed = []int{0}
			}

			bytes, err := NewPoKPayload(count, revealed).ToBytes()
			require.NoError(t, err)
			require.Len(t, bytes, 2+count/8+1)

			payload, err := ParsePoKPayload(append(bytes, 1, 2, 3))
			require.NoError(t, err)
			require.Equal(t, count, payload.MessagesCount())
			require.Equal(t, revealed, payload.Revealed)
		}
	})

	t.Run("parse does not modify input", func(t *testing.T) {
		bytes, err := NewPoKPayload(12, []int{1, 11}).ToBytes()
		require.NoError(t, err)

		input := append([]byte{}, bytes...)

		_, err = ParsePoKPayload(input)
		require.NoError(t, err)
		require.Equal(t, bytes, input)
	})

	t.Run("set bit beyond messages count", func(t *testing.T) {
		_, err := ParsePoKPayload([]byte{0, 2, 0b100})
		require.ErrorIs(t, err, ErrMalformedProof)
	})

	t.Run("messages count does not fit", func(t *testing.T) {
		_, err := NewPoKPayload(MaxMessagesCount+1, nil).ToBytes()
		require.ErrorIs(t, err, ErrCapacityMismatch)
	})
}

func Test_normalizeIndexes(t *testing.T) {
	indexes := []int{4, 0, 2}

	sorted, err := normalizeIndexes(indexes, 5)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4}, sorted)
	require.Equal(t, []int{4, 0, 2}, indexes)

	sorted, err = normalizeIndexes(nil, 5)
	require.NoError(t, err)
	require.Empty(t, sorted)

	_, err = normalizeIndexes([]int{5}, 5)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	_, err = normalizeIndexes([]int{-1}, 5)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	_, err = normalizeIndexes([]int{3, 1, 3}, 5)
	require.ErrorIs(t, err, ErrDuplicateIndex)
}

func Test_revealedIndexSet(t *testing.T) {
	indexes := []int{4, 0, 4, 2, 0}

	set, err := revealedIndexSet(indexes, 5)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4}, set)
	require.Equal(t, []int{4, 0, 4, 2, 0}, indexes)

	set, err = revealedIndexSet(nil, 5)
	require.NoError(t, err)
	require.Empty(t, set)

	_, err = revealedIndexSet([]int{1, 5}, 5)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	_, err = revealedIndexSet([]int{-1, -1}, 5)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}
