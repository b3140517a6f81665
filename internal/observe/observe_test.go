package observe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_SubscribeReceivesCurrentValueImmediately(t *testing.T) {
	v := NewValue[int]()
	v.Set(42)

	ch, cancel := v.Subscribe()
	defer cancel()

	select {
	case got := <-ch:
		assert.Equal(t, 42, got)
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the current value")
	}
}

func TestValue_SubscribeBeforeFirstSetReceivesNothing(t *testing.T) {
	v := NewValue[int]()

	ch, cancel := v.Subscribe()
	defer cancel()

	select {
	case got := <-ch:
		t.Fatalf("unexpected value %d before first Set", got)
	default:
	}

	v.Set(1)
	assert.Equal(t, 1, <-ch)
}

func TestValue_SlowSubscriberSeesLatest(t *testing.T) {
	v := NewValue[int]()
	ch, cancel := v.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; old values are discarded, not blocked on.
	for i := 0; i < subscriberBuffer*3; i++ {
		v.Set(i)
	}

	var last int
	for {
		select {
		case got := <-ch:
			last = got
		default:
			assert.Equal(t, subscriberBuffer*3-1, last)

			return
		}
	}
}

func TestValue_CancelClosesChannel(t *testing.T) {
	v := NewValue[string]()
	ch, cancel := v.Subscribe()

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Cancelling twice is harmless.
	cancel()
}

func TestValue_CloseStopsDelivery(t *testing.T) {
	v := NewValue[int]()
	ch, cancel := v.Subscribe()
	defer cancel()

	v.Close()
	_, open := <-ch
	assert.False(t, open)

	// Sets after Close are ignored.
	v.Set(99)
	_, ok := v.Get()
	assert.False(t, ok)
}

func TestValue_SubscribeAfterCloseYieldsClosedChannel(t *testing.T) {
	v := NewValue[int]()
	v.Close()

	ch, cancel := v.Subscribe()
	defer cancel()

	_, open := <-ch
	assert.False(t, open)
}

func TestHub_NotifyWakesSubscribers(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("user-1")
	defer cancel()

	h.Notify("user-1")

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("subscriber never woke")
	}
}

func TestHub_NotificationsCoalesce(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("user-1")
	defer cancel()

	h.Notify("user-1")
	h.Notify("user-1")
	h.Notify("user-1")

	<-ch
	select {
	case <-ch:
		t.Fatal("unconsumed notifications must coalesce into one signal")
	default:
	}
}

func TestHub_KeysAreIndependent(t *testing.T) {
	h := NewHub()
	ch1, cancel1 := h.Subscribe("user-1")
	defer cancel1()
	ch2, cancel2 := h.Subscribe("user-2")
	defer cancel2()

	h.Notify("user-1")

	require.Len(t, ch1, 1)
	assert.Empty(t, ch2)
}

func TestHub_CancelReleasesSubscription(t *testing.T) {
	h := NewHub()
	ch, cancel := h.Subscribe("user-1")

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Notifying a key with no remaining subscribers is a no-op.
	h.Notify("user-1")
}
