package eventbus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mizanapp/mizan/internal/shared/infrastructure/eventbus"
)

func TestInProcessBus_PrefixRouting(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)

	var plannerKeys, allKeys []string
	bus.Subscribe("planner.", func(ctx context.Context, key string, payload []byte) error {
		plannerKeys = append(plannerKeys, key)
		return nil
	})
	bus.Subscribe("", func(ctx context.Context, key string, payload []byte) error {
		allKeys = append(allKeys, key)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, "planner.commitment.created", []byte(`{}`)))
	require.NoError(t, bus.Publish(ctx, "billing.invoice.paid", []byte(`{}`)))

	assert.Equal(t, []string{"planner.commitment.created"}, plannerKeys)
	assert.ElementsMatch(t, []string{"planner.commitment.created", "billing.invoice.paid"}, allKeys)
}

func TestInProcessBus_HandlerErrorNotPropagated(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	bus.Subscribe("", func(ctx context.Context, key string, payload []byte) error {
		return errors.New("consumer broke")
	})

	err := bus.Publish(context.Background(), "planner.day.rearranged", nil)
	assert.NoError(t, err, "a consumer failure must not fail a committed mutation")
}

func TestInProcessBus_NoSubscribers(t *testing.T) {
	bus := eventbus.NewInProcessBus(nil)
	assert.NoError(t, bus.Publish(context.Background(), "planner.commitment.created", nil))
	assert.NoError(t, bus.Close())
}
