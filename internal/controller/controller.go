// Package controller 实现会话生命周期控制器
// 负责上传/聊天视图切换、导航位置的 chat 参数同步，
// 并在加载、选中与删除时对齐持久化状态与文档列表。
package controller

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"doc-chat-cli/internal/api"
	"doc-chat-cli/internal/chat"
	"doc-chat-cli/internal/doclist"
	"doc-chat-cli/internal/logger"
	"doc-chat-cli/internal/loop"
	"doc-chat-cli/internal/nav"
	"doc-chat-cli/internal/state"
	"doc-chat-cli/internal/ui"
	"doc-chat-cli/internal/upload"
)

// Controller 会话生命周期控制器
// 每次启动构造一个实例，持有原先散落的全局可变状态
// （会话游标、视图、导航位置），其余组件经由它协作。
type Controller struct {
	sched   loop.Scheduler
	api     *api.Client
	store   *state.Store
	screen  *ui.Screen
	loc     *nav.Location
	list    *doclist.List
	channel *chat.Channel
	uploads *upload.Pipeline

	currentSessionID string
	inputInstalled   bool

	confirm func(title, message string) bool
	onQuit  func()

	defaultDocID   string
	defaultDocName string
}

// New 创建控制器并接好各组件的交互回调
func New(
	sched loop.Scheduler,
	apiClient *api.Client,
	store *state.Store,
	screen *ui.Screen,
	loc *nav.Location,
	confirm func(title, message string) bool,
	defaultDocID, defaultDocName string,
) *Controller {
	c := &Controller{
		sched:          sched,
		api:            apiClient,
		store:          store,
		screen:         screen,
		loc:            loc,
		confirm:        confirm,
		defaultDocID:   defaultDocID,
		defaultDocName: defaultDocName,
	}

	// 列表行的两个交互：点击文档名进入聊天、提交删除
	c.list = doclist.New(c.StartChat, c.DeleteDocument)
	c.channel = chat.NewChannel(apiClient, sched, ui.NewMessageLog(screen.Out()))
	c.uploads = upload.NewPipeline(apiClient, sched, c.list, screen, c.alert, c.StartChat)

	return c
}

// List 返回文档列表模型
func (c *Controller) List() *doclist.List {
	return c.list
}

// Channel 返回消息通道
func (c *Controller) Channel() *chat.Channel {
	return c.channel
}

// Uploads 返回上传管道
func (c *Controller) Uploads() *upload.Pipeline {
	return c.uploads
}

// Location 返回当前导航位置
func (c *Controller) Location() *nav.Location {
	return c.loc
}

// SessionID 返回当前会话游标
func (c *Controller) SessionID() string {
	return c.currentSessionID
}

// SetOnQuit 设置退出回调
func (c *Controller) SetOnQuit(fn func()) {
	c.onQuit = fn
}

// Bootstrap 启动引导
// 位置带 chat 参数时：有保存状态则恢复该会话，否则以兜底文档开启；
// 不带 chat 参数时无条件丢弃任何残留的保存状态。
func (c *Controller) Bootstrap() {
	if c.loc.HasQuery("chat") {
		if saved := c.store.Restore(); saved != nil {
			c.StartChat(saved.DocumentID, saved.DocumentName)
		} else {
			c.StartChat(c.defaultDocID, c.defaultDocName)
		}
		return
	}

	c.store.Clear()
	c.ShowUploadSection()
	c.renderList()
}

// StartChat 为指定文档开启（或恢复）会话
// 高亮同步发生在请求发出之前；成功后进入聊天视图、加载历史并落盘状态，
// 失败（无 success 也无 session_id）硬性回退到首页，不重试。
func (c *Controller) StartChat(documentID, documentName string) {
	logger.L().Info("开启会话",
		zap.String("document_id", documentID), zap.String("document_name", documentName))

	c.list.Highlight(documentID)

	c.sched.Go(func() func() {
		resp, err := c.api.StartChat(documentID)
		return func() {
			if err != nil {
				logger.L().Error("开启会话请求失败", zap.String("document_id", documentID), logger.Err(err))
				c.redirectIndex()
				return
			}
			if !resp.Success && resp.SessionID == "" {
				c.redirectIndex()
				return
			}

			sessionID := resp.SessionID
			if sessionID == "" {
				sessionID = documentID
			}
			c.currentSessionID = sessionID
			c.channel.SetSession(sessionID)

			c.showChatInterface(documentName, documentID)
			c.channel.LoadHistory(sessionID)
			c.store.Save(documentID, documentName, sessionID)
		}
	})
}

// showChatInterface 纯视图切换：进入聊天视图并同步 chat 参数
// 替换式更新位置，不触发重载；输入处理的安装是幂等的。
func (c *Controller) showChatInterface(documentName, documentID string) {
	c.screen.ShowChat(documentName)
	c.loc.ReplaceQuery("chat", documentID)
	c.installInputHandlers()
}

// ShowUploadSection 纯视图切换：回到上传视图
// 上传区提示、待选文件与加载/成功指示由屏幕统一复位。
func (c *Controller) ShowUploadSection() {
	c.screen.ShowUpload()
}

// LeaveChat 离开聊天（经确认对话）
// 确认后回到上传视图、清除保存状态、去掉 chat 参数并清除列表高亮。
func (c *Controller) LeaveChat() {
	if !c.confirm("Leave Chat", "Are you sure you want to leave the chat?") {
		return
	}

	c.ShowUploadSection()
	c.store.Clear()
	c.loc.DeleteQuery("chat")
	c.list.ClearActive()
	c.renderList()
}

// DeleteDocument 删除文档并做删除后对账
// 空列表：回上传视图 + 清状态 + 去掉 chat 参数并恢复占位；
// 非空：按重选策略取新的最前条目并为其开启会话（重新加载历史）。
func (c *Controller) DeleteDocument(documentID string) {
	c.sched.Go(func() func() {
		err := c.api.DeleteDocument(documentID)
		return func() {
			if err != nil {
				logger.L().Error("删除文档失败", zap.String("document_id", documentID), logger.Err(err))
				c.alert("error", "Delete Failed", "Failed to delete document")
				return
			}

			deletedIndex := c.list.Remove(documentID)
			if deletedIndex < 0 {
				return
			}

			if c.list.IsEmpty() {
				c.ShowUploadSection()
				c.store.Clear()
				c.loc.DeleteQuery("chat")
				c.renderList()
				return
			}

			next := c.list.SelectNext(deletedIndex)
			c.StartChat(next.ID, next.DisplayName)
		}
	})
}

// redirectIndex 开启会话失败时的致命回退
// 等价于整页跳转 /index/：丢弃内存中的会话游标与输入安装标记，
// 位置重置为不带 chat 参数的首页，并按无参数分支清掉保存状态。
func (c *Controller) redirectIndex() {
	logger.L().Warn("开启会话失败，回退到首页")

	c.currentSessionID = ""
	c.channel.SetSession("")
	c.inputInstalled = false
	c.loc = nav.NewIndex()

	c.store.Clear()
	c.ShowUploadSection()
	c.renderList()
}

// installInputHandlers 安装消息输入处理
// 持久监听器按控制器当前状态分发，安装标记保证重复进入
// 聊天视图不会叠加处理器。
func (c *Controller) installInputHandlers() {
	if c.inputInstalled {
		return
	}
	c.inputInstalled = true
	c.screen.Hint("  输入消息后回车发送；/back 返回，/list 查看文档，/help 全部命令")
}

// HandleInput 处理一行终端输入（回车提交）
func (c *Controller) HandleInput(line string) {
	line = strings.TrimRight(line, "\r\n")

	switch c.screen.View() {
	case ui.ViewChat:
		c.handleChatInput(line)
	default:
		c.handleUploadInput(line)
	}
}

// handleChatInput 聊天视图：/ 开头是命令，其余按消息发送
func (c *Controller) handleChatInput(line string) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "/") {
		c.dispatchCommand(strings.TrimPrefix(trimmed, "/"))
		return
	}
	// 空白输入由消息通道自行忽略
	c.channel.Send(line)
}

// handleUploadInput 上传视图：数字选中文档，字母命令操作列表
func (c *Controller) handleUploadInput(line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}

	if n, err := strconv.Atoi(trimmed); err == nil {
		c.list.Select(n - 1)
		return
	}
	c.dispatchCommand(trimmed)
}

// dispatchCommand 两个视图共用的命令分发
func (c *Controller) dispatchCommand(cmdline string) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "back", "b":
		c.LeaveChat()
	case "list", "ls":
		c.renderList()
	case "open", "o":
		if i, ok := argIndex(fields); ok {
			c.list.Select(i)
		}
	case "delete", "d":
		if i, ok := argIndex(fields); ok {
			c.list.Delete(i)
		}
	case "upload", "u":
		if len(fields) > 1 {
			c.uploads.UploadPrimary(strings.Join(fields[1:], " "))
		}
	case "new", "n":
		if len(fields) > 1 {
			c.uploads.UploadQuick(strings.Join(fields[1:], " "))
		}
	case "help", "h":
		c.printHelp()
	case "quit", "q":
		if c.onQuit != nil {
			c.onQuit()
		}
	default:
		c.screen.Hint("  未知命令，/help 查看用法")
	}
}

// argIndex 解析命令的序号参数（展示序号从 1 起）
func argIndex(fields []string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func (c *Controller) renderList() {
	c.screen.RenderDocumentList(c.list.RenderLines())
}

func (c *Controller) printHelp() {
	c.screen.Hint("  <序号>          打开对应文档的聊天")
	c.screen.Hint("  u <文件路径>    上传文档")
	c.screen.Hint("  n <文件路径>    新对话（快捷上传）")
	c.screen.Hint("  d <序号>        删除文档")
	c.screen.Hint("  ls              查看文档列表")
	c.screen.Hint("  /back           离开聊天（聊天视图）")
	c.screen.Hint("  q               退出")
}

func (c *Controller) alert(kind, title, message string) {
	ui.Alert(c.screen.Out(), kind, title, message)
}
