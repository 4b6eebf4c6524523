package hub

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/events"
)

// 包级别的 WebSocket 常量，供 hub 和 client 包内使用
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// HubMessage 定义了在 Hub 内部通道传递的消息类型
type HubMessage struct {
	Type    string  // "register", "unregister", "command"
	Client  *Client // 消息来源的客户端
	RawData []byte  // 仅用于 command (原始 WebSocket 帧)
}

// CommandDispatcher 处理客户端发来的命令帧。
// 由 websocket handler 实现，启动时通过 SetDispatcher 注入，
// 避免 Hub 与 handler 的构造循环。
type CommandDispatcher interface {
	Dispatch(ctx context.Context, client *Client, raw []byte)
}

// Hub 维护活跃客户端集合和频道订阅，并协调消息处理。
// 频道以 Room id 或 Author id 字符串为键。
type Hub struct {
	// 内部通道，处理所有来自 Client 的事件
	messageChan chan HubMessage

	// 频道订阅，map[channel]map[*Client]bool
	channels map[string]map[*Client]bool
	// 反向索引，map[*Client]map[channel]bool，注销时用于批量退订
	subscriptions map[*Client]map[string]bool
	// 保护上面两个 map 的读写锁
	mu sync.RWMutex

	dispatcher CommandDispatcher
}

// NewHub 创建并返回一个新的 Hub 实例
func NewHub() *Hub {
	return &Hub{
		// 创建带缓冲区的通道，大小可根据预期负载调整
		messageChan:   make(chan HubMessage, 512),
		channels:      make(map[string]map[*Client]bool),
		subscriptions: make(map[*Client]map[string]bool),
	}
}

// SetDispatcher 注入命令分发器，必须在 Run 之前调用。
func (h *Hub) SetDispatcher(d CommandDispatcher) {
	if d == nil {
		panic("CommandDispatcher cannot be nil for Hub")
	}
	h.dispatcher = d
}

// Run 启动 Hub 的主事件处理循环。
// 它应该在一个单独的 goroutine 中运行。
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")

	for msg := range h.messageChan {
		switch msg.Type {
		case "register":
			h.registerClient(msg.Client)
		case "unregister":
			h.unregisterClient(msg.Client)
		case "command":
			// 异步处理客户端命令，避免阻塞 Hub 主循环
			go h.dispatcher.Dispatch(context.Background(), msg.Client, msg.RawData)
		default:
			log.Warnf("Hub: Received unknown message type: %s", msg.Type)
		}
	}
	log.Info("Hub is shutting down...")
}

// registerClient 处理客户端注册逻辑
func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"client_id": client.ID(),
		"action":    "registerClient",
	})

	h.mu.Lock()
	if _, ok := h.subscriptions[client]; !ok {
		h.subscriptions[client] = make(map[string]bool)
	}
	h.mu.Unlock()
	logCtx.Info("Client registered to Hub")
}

// unregisterClient 处理客户端注销逻辑
func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to unregister a nil client")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"client_id": client.ID(),
		"action":    "unregisterClient",
	})

	h.mu.Lock()
	subs, exists := h.subscriptions[client]
	if exists {
		// 从其订阅的每个频道中删除该客户端
		for channel := range subs {
			if members, ok := h.channels[channel]; ok {
				delete(members, client)
				if len(members) == 0 {
					delete(h.channels, channel)
				}
			}
		}
		delete(h.subscriptions, client)

		// 关闭此客户端的 send 通道，这将导致其 WritePump 退出
		client.closeSend()
	} else {
		logCtx.Warn("Client not found during unregister")
	}
	h.mu.Unlock()
	logCtx.Info("Client unregistered from Hub")
}

// Subscribe 将客户端加入指定频道。
func (h *Hub) Subscribe(client *Client, channel string) {
	if client == nil || channel == "" {
		return
	}
	h.mu.Lock()
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true
	if _, ok := h.subscriptions[client]; !ok {
		h.subscriptions[client] = make(map[string]bool)
	}
	h.subscriptions[client][channel] = true
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID(),
		"channel":   channel,
	}).Debug("Client subscribed to channel")
}

// Unsubscribe 将客户端从指定频道移除。
func (h *Hub) Unsubscribe(client *Client, channel string) {
	if client == nil || channel == "" {
		return
	}
	h.mu.Lock()
	if members, ok := h.channels[channel]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.channels, channel)
		}
	}
	if subs, ok := h.subscriptions[client]; ok {
		delete(subs, channel)
	}
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"client_id": client.ID(),
		"channel":   channel,
	}).Debug("Client unsubscribed from channel")
}

// Publish 将一个事件发送给频道的所有订阅者，排除 exclude (通常是动作发起方)。
func (h *Hub) Publish(channel, event string, payload interface{}, exclude *Client) {
	h.mu.RLock()
	members, ok := h.channels[channel]
	// 创建一个接收者列表的副本，以避免长时间持有锁
	clientsToSend := make([]*Client, 0, len(members))
	if ok {
		for client := range members {
			if client != exclude {
				clientsToSend = append(clientsToSend, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(clientsToSend) == 0 {
		return
	}

	frame, err := events.Reply(event, payload)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"channel": channel,
			"event":   event,
		}).Error("Failed to marshal event for publish")
		return
	}

	logCtx := logrus.WithFields(logrus.Fields{
		"channel":         channel,
		"event":           event,
		"recipient_count": len(clientsToSend),
	})
	logCtx.Debug("Publishing event to channel subscribers")

	for _, client := range clientsToSend {
		// 经由 Send 投递：队列满时丢帧，客户端并发注销时安全忽略
		client.Send(frame)
	}
}

// QueueMessage 将消息放入 Hub 的处理队列 (非阻塞)。
// 这是 Client 向 Hub 发送消息的安全方式。
// 返回 true 如果消息成功入队，false 如果队列已满。
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithField("message_type", msg.Type).Warn("Hub message channel full, dropping message")
		return false
	}
}
