package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpers(t *testing.T) {
	t.Run(`IsContextDone check`, func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		require.False(t, IsContextDone(ctx))
		cancel()
		require.True(t, IsContextDone(ctx))
	})

	t.Run(`StrPtr check`, func(t *testing.T) {
		require.Nil(t, StrPtr("  "))
		value := StrPtr(" Ana ")
		require.NotNil(t, value)
		require.Equal(t, "Ana", *value)
	})

	t.Run(`Truncate check`, func(t *testing.T) {
		require.Equal(t, "Revis", Truncate("Revisión CV", 5))
		require.Equal(t, "CV", Truncate("CV", 5))
	})
}
