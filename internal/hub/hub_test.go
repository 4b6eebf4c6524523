package hub

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Derplicity/messaging-service/internal/events"
)

// 测试不跑读写泵，直接操作 send 通道
func newTestClient(h *Hub, id string) *Client {
	return NewClient(h, nil, id)
}

func receiveFrame(t *testing.T, c *Client) *events.Frame {
	t.Helper()
	select {
	case raw := <-c.send:
		frame, err := events.Decode(raw)
		require.NoError(t, err)
		return frame
	default:
		t.Fatal("expected a frame in the client send channel")
		return nil
	}
}

func TestHub_PublishDeliversToSubscribers(t *testing.T) {
	h := NewHub()
	c1 := newTestClient(h, "c1")
	c2 := newTestClient(h, "c2")
	h.registerClient(c1)
	h.registerClient(c2)
	h.Subscribe(c1, "room-1")
	h.Subscribe(c2, "room-1")

	h.Publish("room-1", "message:created", map[string]string{"id": "m1"}, nil)

	frame1 := receiveFrame(t, c1)
	frame2 := receiveFrame(t, c2)
	assert.Equal(t, "message:created", frame1.Event)
	assert.Equal(t, "message:created", frame2.Event)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(frame1.Data, &payload))
	assert.Equal(t, "m1", payload["id"])
}

func TestHub_PublishExcludesOrigin(t *testing.T) {
	h := NewHub()
	origin := newTestClient(h, "origin")
	other := newTestClient(h, "other")
	h.registerClient(origin)
	h.registerClient(other)
	h.Subscribe(origin, "room-1")
	h.Subscribe(other, "room-1")

	h.Publish("room-1", "room:updated", map[string]string{"id": "room-1"}, origin)

	assert.Empty(t, origin.send, "发起方不应收到自己的广播")
	receiveFrame(t, other)
}

func TestHub_PublishToUnknownChannelIsNoop(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "c1")
	h.registerClient(c)

	h.Publish("nobody-here", "room:updated", nil, nil)

	assert.Empty(t, c.send)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "c1")
	h.registerClient(c)
	h.Subscribe(c, "room-1")
	h.Unsubscribe(c, "room-1")

	h.Publish("room-1", "room:updated", nil, nil)

	assert.Empty(t, c.send)
}

func TestHub_ClientCanSubscribeMultipleChannels(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "c1")
	h.registerClient(c)
	h.Subscribe(c, "room-1")
	h.Subscribe(c, "author-1")

	h.Publish("room-1", "room:updated", nil, nil)
	h.Publish("author-1", "message:created", nil, nil)

	assert.Equal(t, "room:updated", receiveFrame(t, c).Event)
	assert.Equal(t, "message:created", receiveFrame(t, c).Event)
}

func TestHub_UnregisterRemovesAllSubscriptions(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "c1")
	h.registerClient(c)
	h.Subscribe(c, "room-1")
	h.Subscribe(c, "room-2")

	h.unregisterClient(c)

	h.mu.RLock()
	assert.Empty(t, h.channels, "空频道应随客户端注销被清理")
	assert.NotContains(t, h.subscriptions, c)
	h.mu.RUnlock()

	// send 通道已关闭，WritePump 会随之退出
	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_SendAfterUnregisterDropsFrame(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "c1")
	h.registerClient(c)
	h.Subscribe(c, "room-1")

	h.unregisterClient(c)

	// 注销后向客户端投递不应 panic，帧被丢弃
	assert.False(t, c.Send([]byte("{}")))
}

func TestHub_PublishRacingUnregisterDoesNotPanic(t *testing.T) {
	// 广播在快照订阅者之后、写入 send 之前，客户端可能被并发注销
	h := NewHub()
	payload := map[string]string{"text": string(make([]byte, 1<<16))}

	for i := 0; i < 200; i++ {
		c := newTestClient(h, "c1")
		h.registerClient(c)
		h.Subscribe(c, "room-1")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Publish("room-1", "message:created", payload, nil)
		}()
		go func() {
			defer wg.Done()
			h.unregisterClient(c)
		}()
		wg.Wait()
	}
}

func TestHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	h := NewHub()
	c := newTestClient(h, "c1")
	h.registerClient(c)
	h.Subscribe(c, "room-1")

	// 填满 send 通道，后续广播应被丢弃而不是阻塞
	for i := 0; i < cap(c.send); i++ {
		c.send <- []byte("{}")
	}
	h.Publish("room-1", "room:updated", nil, nil)

	assert.Len(t, c.send, cap(c.send))
}
