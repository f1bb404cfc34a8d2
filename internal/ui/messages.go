package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	userStyle = color.New(color.FgHiGreen, color.Bold)
	botStyle  = color.New(color.FgHiCyan, color.Bold)
)

// Message 一条聊天消息，只追加，按到达顺序展示
type Message struct {
	Sender string
	Text   string
}

// MessageLog 消息流
// 消息从不落盘，每次进入会话都从服务端历史接口重建。
type MessageLog struct {
	out  io.Writer
	msgs []Message
}

// NewMessageLog 创建消息流
func NewMessageLog(out io.Writer) *MessageLog {
	return &MessageLog{out: out}
}

// Clear 清空消息流（进入会话前调用）
func (m *MessageLog) Clear() {
	m.msgs = m.msgs[:0]
}

// Append 追加并立即打印一条消息
func (m *MessageLog) Append(sender, text string) {
	m.msgs = append(m.msgs, Message{Sender: sender, Text: text})

	switch sender {
	case "User":
		userStyle.Fprintf(m.out, "🧑 %s: ", sender)
	case "Bot":
		botStyle.Fprintf(m.out, "🤖 %s: ", sender)
	default:
		fmt.Fprintf(m.out, "%s: ", sender)
	}
	fmt.Fprintln(m.out, text)
}

// Messages 返回当前消息的副本
func (m *MessageLog) Messages() []Message {
	out := make([]Message, len(m.msgs))
	copy(out, m.msgs)
	return out
}

// Len 当前消息条数
func (m *MessageLog) Len() int {
	return len(m.msgs)
}
