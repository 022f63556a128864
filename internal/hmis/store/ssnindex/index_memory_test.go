package ssnindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "placemaker/pkg/domain"
	"placemaker/pkg/platform/sentinel"
)

func TestInMemoryClaims(t *testing.T) {
	ctx := context.Background()
	x := NewInMemory()
	alice, bob := id.NewPersonalID(), id.NewPersonalID()

	require.NoError(t, x.Claim(ctx, "123456789", alice))
	require.NoError(t, x.Claim(ctx, "123456789", alice), "reclaim by owner")

	err := x.Claim(ctx, "123456789", bob)
	assert.ErrorIs(t, err, ErrClaimed)
	assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)

	owner, err := x.Owner(ctx, "123456789")
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	require.NoError(t, x.Release(ctx, "123456789", bob))
	_, err = x.Owner(ctx, "123456789")
	require.NoError(t, err, "release by non-owner keeps the claim")

	require.NoError(t, x.Release(ctx, "123456789", alice))
	_, err = x.Owner(ctx, "123456789")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	require.NoError(t, x.Claim(ctx, "123456789", bob))
}

func TestFingerprintHidesSSN(t *testing.T) {
	fp := fingerprint("123456789")
	assert.Len(t, fp, 64)
	assert.NotContains(t, fp, "123456789")
	assert.Equal(t, fp, fingerprint("123456789"))
	assert.NotEqual(t, fp, fingerprint("123456780"))
}
