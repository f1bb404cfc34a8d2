// Package state 持久化当前会话状态
// 单槽存储：任意时刻最多存在一条 ChatState 记录，
// 序列化为配置目录下的一个固定 JSON 文件。
package state

import (
	"encoding/json"
	"os"
	"path/filepath"

	"doc-chat-cli/internal/logger"
)

// 存储文件名（固定键）
const stateFileName = "chat_state.json"

// ChatState 当前活跃的文档/会话记录
// 字段名与持久化格式保持一致。
type ChatState struct {
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
	SessionID    string `json:"sessionId"`
	IsActive     bool   `json:"isActive"`
}

// Store 单槽持久化存储
type Store struct {
	path string
}

// NewStore 创建存储，记录保存在 dir 下的固定文件中
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, stateFileName)}
}

// Save 写入会话状态，覆盖已有记录
// 存储层失败（权限、序列化）降级为"无保存状态"，只记日志，不上抛。
func (s *Store) Save(documentID, documentName, sessionID string) {
	data, err := json.Marshal(&ChatState{
		DocumentID:   documentID,
		DocumentName: documentName,
		SessionID:    sessionID,
		IsActive:     true,
	})
	if err != nil {
		logger.L().Warn("序列化会话状态失败", logger.Err(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		logger.L().Warn("创建状态目录失败", logger.Err(err))
		return
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		logger.L().Warn("写入会话状态失败", logger.Err(err))
	}
}

// Restore 读取会话状态
// 记录缺失、损坏或 isActive 为 false 时一律返回 nil，从不报错。
func (s *Store) Restore() *ChatState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var st ChatState
	if err := json.Unmarshal(data, &st); err != nil {
		logger.L().Warn("会话状态文件损坏", logger.Err(err))
		return nil
	}

	if !st.IsActive {
		return nil
	}
	return &st
}

// Clear 删除记录，幂等
func (s *Store) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		logger.L().Warn("清除会话状态失败", logger.Err(err))
	}
}
