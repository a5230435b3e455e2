package platform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/karsow/sessionreel/pkg/adapters/memory"
)

func TestNewWithInjectedStore(t *testing.T) {
	// An injected store must bypass S3 client construction entirely, so
	// wiring works without credentials or network.
	store := memory.NewStore()

	svc, err := New(context.Background(), Config{}, WithStore(store))
	require.NoError(t, err)
	require.NotNil(t, svc)

	// The wired engine talks to the injected store.
	require.NoError(t, svc.EnsureUserLayout(context.Background(), "alice"))
	require.Equal(t, 3, store.Len())
}
