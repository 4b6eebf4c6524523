package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Derplicity/messaging-service/internal/events"
	"github.com/Derplicity/messaging-service/internal/hub"
	"github.com/Derplicity/messaging-service/internal/notify"
	"github.com/Derplicity/messaging-service/internal/service"
)

// errInvalidPayload 表示命令帧的 data 字段无法解析为期望的形状
var errInvalidPayload = errors.New("invalid command payload")

// commandFunc 执行一条客户端命令，返回应答的 data 部分。
type commandFunc func(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error)

// Dispatcher 把命令事件名映射到处理函数。
// 路由表在启动时构建一次，避免散落的字符串匹配。
type Dispatcher struct {
	hub            *hub.Hub
	authorService  *service.AuthorService
	roomService    *service.RoomService
	messageService *service.MessageService
	notifier       *notify.Notifier
	routes         map[string]commandFunc
}

// NewDispatcher 创建 Dispatcher 并注册全部命令路由。
func NewDispatcher(h *hub.Hub, authorService *service.AuthorService, roomService *service.RoomService, messageService *service.MessageService, notifier *notify.Notifier) *Dispatcher {
	if h == nil {
		panic("Hub cannot be nil for Dispatcher")
	}
	if authorService == nil || roomService == nil || messageService == nil {
		panic("Services cannot be nil for Dispatcher")
	}
	if notifier == nil {
		panic("Notifier cannot be nil for Dispatcher")
	}

	d := &Dispatcher{
		hub:            h,
		authorService:  authorService,
		roomService:    roomService,
		messageService: messageService,
		notifier:       notifier,
	}
	d.routes = map[string]commandFunc{
		events.CmdAuthorUpdate:  d.authorUpdate,
		events.CmdAuthorArchive: d.authorArchive,
		events.CmdAuthorDelete:  d.authorDelete,

		events.CmdRoomCreate:  d.roomCreate,
		events.CmdRoomUpdate:  d.roomUpdate,
		events.CmdRoomArchive: d.roomArchive,
		events.CmdRoomDelete:  d.roomDelete,
		events.CmdRoomJoin:    d.roomJoin,
		events.CmdRoomLeave:   d.roomLeave,
		events.CmdRoomsJoin:   d.roomsJoin,
		events.CmdRoomsLeave:  d.roomsLeave,

		events.CmdMessageCreate:  d.messageCreate,
		events.CmdMessageUpdate:  d.messageUpdate,
		events.CmdMessageArchive: d.messageArchive,
		events.CmdMessageDelete:  d.messageDelete,
	}
	return d
}

// Dispatch 解析一帧原始命令并路由到对应的处理函数。
// 无论成功与否，发起方都会收到恰好一帧应答。
func (d *Dispatcher) Dispatch(ctx context.Context, client *hub.Client, raw []byte) {
	frame, err := events.Decode(raw)
	if err != nil || frame.Event == "" {
		logrus.WithField("client_id", client.ID()).Debug("Dispatcher: malformed frame received")
		d.fail(client, "error", errInvalidPayload)
		return
	}

	fn, ok := d.routes[frame.Event]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"client_id": client.ID(),
			"event":     frame.Event,
		}).Debug("Dispatcher: unknown command event")
		d.fail(client, frame.Event, errors.New("unknown event"))
		return
	}

	payload, err := fn(ctx, client, frame.Data)
	if err != nil {
		d.fail(client, frame.Event, err)
		return
	}
	d.ack(client, frame.Event, payload)
}

// ack 向发起方发送携带 data 的应答帧。
func (d *Dispatcher) ack(client *hub.Client, event string, payload interface{}) {
	frame, err := events.Reply(event, payload)
	if err != nil {
		logrus.WithError(err).WithField("event", event).Error("Dispatcher: failed to marshal ack")
		return
	}
	client.Send(frame)
}

// fail 向发起方发送携带 error 的应答帧。
func (d *Dispatcher) fail(client *hub.Client, event string, err error) {
	frame, encErr := events.Fail(event, errorBody(err))
	if encErr != nil {
		logrus.WithError(encErr).WithField("event", event).Error("Dispatcher: failed to marshal error ack")
		return
	}
	client.Send(frame)
}

// errorBody 把业务错误转换为应答帧的 error 结构，与 HTTP 层的错误形状一致。
func errorBody(err error) map[string]interface{} {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return map[string]interface{}{"message": ve.Error(), "fields": ve.Fields}
	case errors.Is(err, service.ErrAuthorNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrMessageNotFound):
		return map[string]interface{}{"message": err.Error()}
	case errors.Is(err, errInvalidPayload):
		return map[string]interface{}{"message": "Invalid request body."}
	default:
		logrus.WithError(err).Error("Dispatcher: unhandled internal error")
		return map[string]interface{}{"message": "An unknown error occurred."}
	}
}

// --- 命令 payload 形状 ---

type authorPayload struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type roomPayload struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type messagePayload struct {
	ID       string `json:"id"`
	RoomID   string `json:"roomId"`
	AuthorID string `json:"authorId"`
	Text     string `json:"text"`
}

func decodePayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return errInvalidPayload
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errInvalidPayload
	}
	return nil
}

// --- Author 命令 ---

func (d *Dispatcher) authorUpdate(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p authorPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	author, err := d.authorService.UpdateAuthor(ctx, p.ID, p.FirstName, p.LastName)
	if err != nil {
		return nil, err
	}
	d.notifier.AuthorUpdated(ctx, author, client)
	return map[string]interface{}{"author": author}, nil
}

func (d *Dispatcher) authorArchive(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p authorPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	author, roomIDs, err := d.authorService.ArchiveAuthor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d.notifier.AuthorChanged(events.AuthorArchived, author, roomIDs, client)
	return map[string]interface{}{"author": author}, nil
}

func (d *Dispatcher) authorDelete(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p authorPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	author, roomIDs, err := d.authorService.DeleteAuthor(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d.notifier.AuthorChanged(events.AuthorDeleted, author, roomIDs, client)
	return map[string]interface{}{"author": author}, nil
}

// --- Room 命令 ---

func (d *Dispatcher) roomCreate(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p roomPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	room, err := d.roomService.CreateRoom(ctx, p.Name, p.Members)
	if err != nil {
		return nil, err
	}
	d.notifier.RoomCreated(room, client)
	return map[string]interface{}{"room": room}, nil
}

func (d *Dispatcher) roomUpdate(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p roomPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	room, err := d.roomService.UpdateRoom(ctx, p.ID, p.Name, p.Members)
	if err != nil {
		return nil, err
	}
	d.notifier.RoomChanged(events.RoomUpdated, room, client)
	return map[string]interface{}{"room": room}, nil
}

func (d *Dispatcher) roomArchive(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p roomPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	room, err := d.roomService.ArchiveRoom(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d.notifier.RoomChanged(events.RoomArchived, room, client)
	return map[string]interface{}{"room": room}, nil
}

func (d *Dispatcher) roomDelete(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p roomPayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	room, err := d.roomService.DeleteRoom(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d.notifier.RoomChanged(events.RoomDeleted, room, client)
	return map[string]interface{}{"room": room}, nil
}

// --- 订阅管理命令 ---
// join/leave 不落库，只调整本连接的频道订阅，应答仅回发起方。
// data 是裸的频道 id 字符串 (单数) 或字符串数组 (复数)。

func (d *Dispatcher) roomJoin(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var channel string
	if err := decodePayload(data, &channel); err != nil {
		return nil, err
	}
	if channel == "" {
		return nil, errInvalidPayload
	}
	d.hub.Subscribe(client, channel)
	return channel, nil
}

func (d *Dispatcher) roomLeave(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var channel string
	if err := decodePayload(data, &channel); err != nil {
		return nil, err
	}
	if channel == "" {
		return nil, errInvalidPayload
	}
	d.hub.Unsubscribe(client, channel)
	return channel, nil
}

func (d *Dispatcher) roomsJoin(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var channels []string
	if err := decodePayload(data, &channels); err != nil {
		return nil, err
	}
	for _, channel := range channels {
		if channel != "" {
			d.hub.Subscribe(client, channel)
		}
	}
	return channels, nil
}

func (d *Dispatcher) roomsLeave(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var channels []string
	if err := decodePayload(data, &channels); err != nil {
		return nil, err
	}
	for _, channel := range channels {
		if channel != "" {
			d.hub.Unsubscribe(client, channel)
		}
	}
	return channels, nil
}

// --- Message 命令 ---

func (d *Dispatcher) messageCreate(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p messagePayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	message, err := d.messageService.CreateMessage(ctx, p.RoomID, p.AuthorID, p.Text)
	if err != nil {
		return nil, err
	}
	d.notifier.MessageCreated(ctx, message, client)
	return map[string]interface{}{"message": message}, nil
}

func (d *Dispatcher) messageUpdate(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p messagePayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	message, err := d.messageService.UpdateMessage(ctx, p.ID, p.Text)
	if err != nil {
		return nil, err
	}
	d.notifier.MessageChanged(events.MessageUpdated, message, client)
	return map[string]interface{}{"message": message}, nil
}

func (d *Dispatcher) messageArchive(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p messagePayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	message, err := d.messageService.ArchiveMessage(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d.notifier.MessageChanged(events.MessageArchived, message, client)
	return map[string]interface{}{"message": message}, nil
}

func (d *Dispatcher) messageDelete(ctx context.Context, client *hub.Client, data json.RawMessage) (interface{}, error) {
	var p messagePayload
	if err := decodePayload(data, &p); err != nil {
		return nil, err
	}
	message, err := d.messageService.DeleteMessage(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d.notifier.MessageChanged(events.MessageDeleted, message, client)
	return map[string]interface{}{"message": message}, nil
}
