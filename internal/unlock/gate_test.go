package unlock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

func TestStatic(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, Granted(), AllowAll().Authenticate(ctx))
	assert.Equal(t, Denied("locked"), Static{Reason: "locked"}.Authenticate(ctx))
	assert.False(t, Static{}.Authenticate(ctx).Granted)
}

func TestRequire(t *testing.T) {
	ctx := context.Background()

	require.NoError(t, Require(ctx, AllowAll()))

	err := Require(ctx, Static{Reason: "locked"})
	require.ErrorIs(t, err, common.ErrAccessDenied)
	assert.EqualError(t, err, "access denied: locked")

	err = Require(ctx, Static{})
	assert.Equal(t, common.ErrAccessDenied, err)
}
