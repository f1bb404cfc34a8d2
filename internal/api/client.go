// Package api 封装与文档聊天后端的 HTTP 交互
// 后端是固定契约的外部协作方：上传、开启会话、历史、发消息、删除文档。
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Client API 客户端
// baseURL: 例如 http://localhost:8000
// csrfToken: 随写操作附带的 CSRF 令牌
// clientID: 持久化的客户端 UUID，随所有请求上报
type Client struct {
	baseURL    string
	uploadPath string
	csrfToken  string
	clientID   string
	httpClient *http.Client
}

// NewClient 创建 API 客户端
func NewClient(baseURL, uploadPath, csrfToken, clientID string) *Client {
	return &Client{
		baseURL:    baseURL,
		uploadPath: uploadPath,
		csrfToken:  csrfToken,
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// --- 上传 ---

// UploadedDocument 上传成功后返回的文档描述
type UploadedDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadResponse 上传响应
type UploadResponse struct {
	Success  bool              `json:"success"`
	Document *UploadedDocument `json:"document"`
}

// UploadDocument 以 multipart 表单上传单个文件
func (c *Client) UploadDocument(filePath string) (*UploadResponse, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("构造上传表单失败: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("读取文件失败: %w", err)
	}
	if err := writer.WriteField("csrfmiddlewaretoken", c.csrfToken); err != nil {
		return nil, fmt.Errorf("构造上传表单失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("构造上传表单失败: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+c.uploadPath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setCommonHeaders(req)

	var result UploadResponse
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- 会话 ---

// StartChatResponse 开启/恢复会话的响应
// success 与 session_id 都可能缺省，调用方按"任一存在即成功"判断。
type StartChatResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
}

// StartChat 为指定文档开启（或恢复）会话
func (c *Client) StartChat(documentID string) (*StartChatResponse, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/start-chat/%s/", c.baseURL, documentID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-CSRFToken", c.csrfToken)
	c.setCommonHeaders(req)

	var result StartChatResponse
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- 消息 ---

// HistoryMessage 历史消息
type HistoryMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// HistoryResponse 会话历史响应
type HistoryResponse struct {
	Messages []HistoryMessage `json:"messages"`
}

// ChatHistory 拉取会话历史，服务端顺序即展示顺序
func (c *Client) ChatHistory(sessionID string) (*HistoryResponse, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/chat-history/%s/", c.baseURL, sessionID), nil)
	if err != nil {
		return nil, err
	}
	c.setCommonHeaders(req)

	var result HistoryResponse
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendMessageResponse 发送消息的响应
type SendMessageResponse struct {
	BotResponse string `json:"bot_response"`
}

// SendMessage 向会话发送一条用户消息
func (c *Client) SendMessage(sessionID, message string) (*SendMessageResponse, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/chat/%s/", c.baseURL, sessionID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-CSRFToken", c.csrfToken)
	c.setCommonHeaders(req)

	var result SendMessageResponse
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- 删除 ---

// DeleteDocument 删除文档，任何 2xx 视为成功
func (c *Client) DeleteDocument(documentID string) error {
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/list/delete/%s", c.baseURL, documentID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-CSRFToken", c.csrfToken)
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("删除失败: HTTP %d", resp.StatusCode)
	}
	return nil
}

// --- 通用请求封装 ---

func (c *Client) setCommonHeaders(req *http.Request) {
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}
