// Package chat 实现消息通道
// 负责当前会话的历史加载与消息收发；消息只存在于消息流中，
// 每次（重新）进入会话都从服务端重建。
package chat

import (
	"strings"

	"go.uber.org/zap"

	"doc-chat-cli/internal/api"
	"doc-chat-cli/internal/logger"
	"doc-chat-cli/internal/loop"
	"doc-chat-cli/internal/ui"
)

// SendErrorText 发送失败时追加的固定错误消息
const SendErrorText = "Error: Unable to get response"

// Channel 消息通道
// sessionID 是指向服务端会话的游标，由生命周期控制器维护。
type Channel struct {
	api       *api.Client
	sched     loop.Scheduler
	log       *ui.MessageLog
	sessionID string
}

// NewChannel 创建消息通道
func NewChannel(apiClient *api.Client, sched loop.Scheduler, log *ui.MessageLog) *Channel {
	return &Channel{
		api:   apiClient,
		sched: sched,
		log:   log,
	}
}

// SetSession 更新当前会话游标
func (ch *Channel) SetSession(sessionID string) {
	ch.sessionID = sessionID
}

// Session 返回当前会话游标
func (ch *Channel) Session() string {
	return ch.sessionID
}

// Log 返回消息流
func (ch *Channel) Log() *ui.MessageLog {
	return ch.log
}

// LoadHistory 清空消息流并加载会话历史
// 服务端返回顺序即展示顺序，客户端不重排。
func (ch *Channel) LoadHistory(sessionID string) {
	ch.log.Clear()

	ch.sched.Go(func() func() {
		resp, err := ch.api.ChatHistory(sessionID)
		return func() {
			if err != nil {
				logger.L().Error("加载会话历史失败",
					zap.String("session_id", sessionID), logger.Err(err))
				return
			}
			for _, msg := range resp.Messages {
				ch.log.Append(msg.Sender, msg.Text)
			}
		}
	})
}

// Send 发送一条用户消息
// 空白消息或无活跃会话时不做任何事；用户消息先乐观追加，
// 失败时保留乐观条目并追加固定错误消息，不重试不回滚。
func (ch *Channel) Send(text string) {
	message := strings.TrimSpace(text)
	if message == "" || ch.sessionID == "" {
		return
	}

	ch.log.Append("User", message)

	sessionID := ch.sessionID
	ch.sched.Go(func() func() {
		resp, err := ch.api.SendMessage(sessionID, message)
		return func() {
			if err != nil {
				logger.L().Error("发送消息失败",
					zap.String("session_id", sessionID), logger.Err(err))
				ch.log.Append("Bot", SendErrorText)
				return
			}
			ch.log.Append("Bot", resp.BotResponse)
		}
	})
}
