// Package events 定义实时接口的事件名和线上帧格式。
// 命令用动词原形 (author:update)，广播用过去式 (author:updated)，
// 应答复用命令本身的事件名并携带 data 或 error。
package events

import "encoding/json"

// 客户端命令
const (
	CmdAuthorUpdate  = "author:update"
	CmdAuthorArchive = "author:archive"
	CmdAuthorDelete  = "author:delete"

	CmdRoomCreate  = "room:create"
	CmdRoomUpdate  = "room:update"
	CmdRoomArchive = "room:archive"
	CmdRoomDelete  = "room:delete"
	CmdRoomJoin    = "room:join"
	CmdRoomLeave   = "room:leave"
	CmdRoomsJoin   = "rooms:join"
	CmdRoomsLeave  = "rooms:leave"

	CmdMessageCreate  = "message:create"
	CmdMessageUpdate  = "message:update"
	CmdMessageArchive = "message:archive"
	CmdMessageDelete  = "message:delete"
)

// 服务端广播
const (
	AuthorUpdated  = "author:updated"
	AuthorArchived = "author:archived"
	AuthorDeleted  = "author:deleted"

	RoomCreated  = "room:created"
	RoomUpdated  = "room:updated"
	RoomArchived = "room:archived"
	RoomDeleted  = "room:deleted"

	MessageCreated  = "message:created"
	MessageUpdated  = "message:updated"
	MessageArchived = "message:archived"
	MessageDeleted  = "message:deleted"
)

// Frame 是实时接口的统一帧：入站时 Data 携带命令参数，
// 出站时 Data 与 Error 二选一。
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error json.RawMessage `json:"error,omitempty"`
}

// outFrame 用 interface{} 字段序列化出站帧，避免调用方先行编码。
type outFrame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
	Error interface{} `json:"error,omitempty"`
}

// Decode 解析一帧入站命令。
func Decode(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Reply 编码一帧携带 data 的出站帧 (应答或广播)。
func Reply(event string, data interface{}) ([]byte, error) {
	return json.Marshal(outFrame{Event: event, Data: data})
}

// Fail 编码一帧携带 error 的应答帧。
func Fail(event string, body interface{}) ([]byte, error) {
	return json.Marshal(outFrame{Event: event, Error: body})
}
