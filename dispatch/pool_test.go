package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDispatchesToHandler(t *testing.T) {
	var mu sync.Mutex
	var got []string

	pool, err := NewPool(2, func(m Message) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, m.Topic)
	})
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, pool.Dispatch(Message{Topic: "a"}))
	require.NoError(t, pool.Dispatch(Message{Topic: "b"}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestNewPoolRejectsNilHandler(t *testing.T) {
	_, err := NewPool(1, nil)
	assert.Error(t, err)
}
