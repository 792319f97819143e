package order

import (
	"errors"
	"testing"

	"pizza-storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	statuses := []Status{StatusSubmitted, StatusPreparing, StatusOutForDelivery, StatusCompleted, StatusRejected}
	actions := []Action{ActionAccept, ActionReject, ActionDispatch, ActionDeliver}

	expected := map[Status]map[Action]Status{
		StatusSubmitted: {
			ActionAccept: StatusPreparing,
			ActionReject: StatusRejected,
		},
		StatusPreparing: {
			ActionDispatch: StatusOutForDelivery,
		},
		StatusOutForDelivery: {
			ActionDeliver: StatusCompleted,
		},
	}

	for _, from := range statuses {
		for _, action := range actions {
			t.Run(from.String()+"/"+string(action), func(t *testing.T) {
				to, err := Next(from, action)

				want, legal := expected[from][action]
				if legal {
					require.NoError(t, err)
					assert.Equal(t, want, to)
					return
				}

				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrIllegalTransition))
				assert.Equal(t, StatusUnknown, to)
			})
		}
	}
}

func TestActions(t *testing.T) {
	assert.Equal(t, []Action{ActionReject, ActionAccept}, Actions(StatusSubmitted))
	assert.Equal(t, []Action{ActionDispatch}, Actions(StatusPreparing))
	assert.Equal(t, []Action{ActionDeliver}, Actions(StatusOutForDelivery))
	assert.Empty(t, Actions(StatusCompleted))
	assert.Empty(t, Actions(StatusRejected))
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("dispatch")
	require.NoError(t, err)
	assert.Equal(t, ActionDispatch, a)

	_, err = ParseAction("cook")
	assert.Error(t, err)
}

func TestProgress(t *testing.T) {
	path := []Status{StatusSubmitted, StatusPreparing, StatusOutForDelivery, StatusCompleted}

	last := -1
	for _, s := range path {
		p, ok := Progress(s)
		require.True(t, ok, s.String())
		assert.Greater(t, p, last, "progress must grow along the happy path")
		last = p
	}
	assert.Equal(t, 100, last)

	p, ok := Progress(StatusRejected)
	assert.False(t, ok)
	assert.Zero(t, p)

	_, ok = Progress(StatusUnknown)
	assert.False(t, ok)
}
