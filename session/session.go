// Package session 定义导出引擎消费的输入契约：会话、消息与图片记录。
// 数据的抓取与存储由上游负责，引擎只读取内存中的完整记录。
package session

import (
	"time"

	"github.com/google/uuid"
)

// Role 表示消息的发送方。
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// DisplayName 返回角色的展示名称。
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	case RoleTool:
		return "Tool"
	default:
		return string(r)
	}
}

// Message 是一条已就绪的消息记录。Annotation 与 ImageRef 均可选。
type Message struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Annotation string    `json:"annotation,omitempty"`
	ImageRef   string    `json:"imageRef,omitempty"`
}

// Session 是一组按时间排列的消息及其元信息。
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	Tier      string    `json:"tier,omitempty"`
	Messages  []Message `json:"messages"`
}

// Image 是单独解析好的图片记录：固有尺寸、编码字节与可选说明。
type Image struct {
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Data    []byte `json:"data"`
	Caption string `json:"caption,omitempty"`
}

// New 创建一个带生成 ID 的空会话。
func New(title string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// Append 向会话追加一条消息并返回它。
func (s *Session) Append(role Role, content string) *Message {
	s.Messages = append(s.Messages, Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	return &s.Messages[len(s.Messages)-1]
}
