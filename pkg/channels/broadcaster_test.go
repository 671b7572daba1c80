package channels_test

import (
	"sync"
	"testing"
	"time"

	"github.com/alkime/steplever/pkg/channels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster(t *testing.T) {
	t.Run("error cases", func(t *testing.T) {
		t.Run("subscribe with nil channel", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			_, err := b.Subscribe(nil)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "cannot be nil")
		})

		t.Run("subscribe with timeout and nil channel", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			_, err := b.SubscribeWithTimeout(nil, 1*time.Second)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "cannot be nil")
		})

		t.Run("subscribe with zero timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			ch := make(chan int, 10)
			_, err := b.SubscribeWithTimeout(ch, 0)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "must be positive")
		})

		t.Run("subscribe with negative timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			ch := make(chan int, 10)
			_, err := b.SubscribeWithTimeout(ch, -1*time.Second)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "must be positive")
		})
	})

	t.Run("basic broadcasting", func(t *testing.T) {
		t.Run("single subscriber receives all messages", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub := make(chan int, 10)
			_, err := b.Subscribe(sub)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)
			b.Publish(3)
			close(sub)

			received := channels.ReceiveAll(sub, 10*time.Millisecond, 0)
			assert.Equal(t, []int{1, 2, 3}, received)
		})

		t.Run("multiple subscribers receive same messages", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub1 := make(chan int, 10)
			sub2 := make(chan int, 10)
			sub3 := make(chan int, 10)
			for _, ch := range []chan int{sub1, sub2, sub3} {
				_, err := b.Subscribe(ch)
				require.NoError(t, err)
			}
			require.Equal(t, 3, b.Len())

			b.Publish(1)
			b.Publish(2)
			b.Publish(3)
			close(sub1)
			close(sub2)
			close(sub3)

			assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub1, 10*time.Millisecond, 0))
			assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub2, 10*time.Millisecond, 0))
			assert.Equal(t, []int{1, 2, 3}, channels.ReceiveAll(sub3, 10*time.Millisecond, 0))
		})

		t.Run("publish with no subscribers", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			b.Publish(42) // must not panic or block
			assert.Equal(t, 0, b.Len())
		})
	})

	t.Run("dynamic subscription", func(t *testing.T) {
		t.Run("unsubscribed channel stops receiving", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub := make(chan int, 10)
			id, err := b.Subscribe(sub)
			require.NoError(t, err)

			b.Publish(1)
			b.Unsubscribe(id)
			b.Publish(2)
			close(sub)

			received := channels.ReceiveAll(sub, 10*time.Millisecond, 0)
			assert.Equal(t, []int{1}, received)
			assert.Equal(t, 0, b.Len())
		})

		t.Run("late subscriber misses earlier messages", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			b.Publish(1)

			sub := make(chan int, 10)
			_, err := b.Subscribe(sub)
			require.NoError(t, err)
			b.Publish(2)
			close(sub)

			received := channels.ReceiveAll(sub, 10*time.Millisecond, 0)
			assert.Equal(t, []int{2}, received)
		})

		t.Run("unsubscribe unknown id is ignored", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			b.Unsubscribe(12345) // must not panic
		})

		t.Run("concurrent subscribe and publish", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()

			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ch := make(chan int, 100)
					id, err := b.Subscribe(ch)
					assert.NoError(t, err)
					b.Unsubscribe(id)
				}()
			}
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range 10 {
						b.Publish(i)
					}
				}()
			}
			wg.Wait()
		})
	})

	t.Run("message dropping", func(t *testing.T) {
		t.Run("non-blocking subscriber drops when full", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub := make(chan int, 1) // Small buffer
			_, err := b.Subscribe(sub)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)
			close(sub)

			received := channels.ReceiveAll(sub, 10*time.Millisecond, 0)
			// Only first message fits (second dropped due to full buffer)
			assert.Equal(t, []int{1}, received)
		})

		t.Run("timeout subscriber drops on timeout", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub := make(chan int, 1) // Small buffer
			_, err := b.SubscribeWithTimeout(sub, 1*time.Millisecond)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)
			close(sub)

			received := channels.ReceiveAll(sub, 10*time.Millisecond, 0)
			assert.Equal(t, []int{1}, received)
		})

		t.Run("full subscriber drops while ready subscriber receives", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			fullSub := make(chan int, 1)
			fullSub <- 99 // Pre-fill to make it full
			readySub := make(chan int, 10)

			_, err := b.Subscribe(fullSub)
			require.NoError(t, err)
			_, err = b.Subscribe(readySub)
			require.NoError(t, err)

			for i := 1; i <= 5; i++ {
				b.Publish(i)
			}

			<-fullSub // Remove pre-filled value
			close(fullSub)
			receivedFull := channels.ReceiveAll(fullSub, 10*time.Millisecond, 0)

			close(readySub)
			receivedReady := channels.ReceiveAll(readySub, 10*time.Millisecond, 0)

			assert.Empty(t, receivedFull, "full subscriber should drop all messages")
			assert.Equal(t, []int{1, 2, 3, 4, 5}, receivedReady, "ready subscriber should receive all messages")
		})
	})

	t.Run("stats", func(t *testing.T) {
		t.Run("reports zero stats for active subscribers", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub1 := make(chan int, 10)
			sub2 := make(chan int, 10)
			id1, err := b.Subscribe(sub1)
			require.NoError(t, err)
			id2, err := b.Subscribe(sub2)
			require.NoError(t, err)

			stats := b.Stats()
			require.Len(t, stats, 2)
			assert.Equal(t, 0, stats[id1].Dropped)
			assert.False(t, stats[id1].Inactive)
			assert.Equal(t, 0, stats[id2].Dropped)
			assert.False(t, stats[id2].Inactive)
		})

		t.Run("reports dropped message counts", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			fullSub := make(chan int, 1)
			fullSub <- 99 // Pre-fill to make it full
			readySub := make(chan int, 10)

			fullID, err := b.Subscribe(fullSub)
			require.NoError(t, err)
			readyID, err := b.Subscribe(readySub)
			require.NoError(t, err)

			for i := 1; i <= 5; i++ {
				b.Publish(i)
			}

			stats := b.Stats()
			require.Len(t, stats, 2)

			assert.Equal(t, 5, stats[fullID].Dropped, "full subscriber should drop all 5 messages")
			assert.False(t, stats[fullID].Inactive, "full subscriber should still be active")
			assert.Equal(t, 0, stats[readyID].Dropped, "ready subscriber should drop no messages")
			assert.False(t, stats[readyID].Inactive)
		})

		t.Run("reports inactive status when channel closed", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub1 := make(chan int, 10)
			sub2 := make(chan int, 10)
			id1, err := b.Subscribe(sub1)
			require.NoError(t, err)
			id2, err := b.Subscribe(sub2)
			require.NoError(t, err)

			// Close first subscriber to trigger inactive state
			close(sub1)

			b.Publish(1)
			b.Publish(2)

			stats := b.Stats()
			require.Len(t, stats, 2)

			assert.Equal(t, 2, stats[id1].Dropped, "closed subscriber should count dropped messages")
			assert.True(t, stats[id1].Inactive, "closed subscriber should be marked inactive")
			assert.Equal(t, 0, stats[id2].Dropped)
			assert.False(t, stats[id2].Inactive)
		})

		t.Run("accumulates dropped message counts", func(t *testing.T) {
			b := channels.NewBroadcaster[int]()
			sub := make(chan int, 1) // Small buffer
			id, err := b.Subscribe(sub)
			require.NoError(t, err)

			b.Publish(1)
			b.Publish(2)
			assert.Equal(t, 1, b.Stats()[id].Dropped, "should have 1 dropped message")

			b.Publish(3)
			b.Publish(4)
			assert.Equal(t, 3, b.Stats()[id].Dropped, "should accumulate to 3 dropped messages")
		})
	})
}
