// Package ui 负责终端渲染
// 两个视图（上传/聊天）、文档列表行、消息流以及告警/确认对话，
// 是核心状态机调用的展示层，不承载业务规则。
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// View 界面视图
type View int

const (
	// ViewUpload 上传视图
	ViewUpload View = iota
	// ViewChat 聊天视图
	ViewChat
)

// 上传区默认提示（对应拖拽区的初始文案）
const defaultFileLabel = "Drag and drop your PDF file here"

var (
	headerStyle = color.New(color.FgHiWhite, color.Bold)
	accentStyle = color.New(color.FgHiMagenta)
	dimStyle    = color.New(color.FgHiBlack)
)

// Screen 终端屏幕
// 持有当前视图与上传区的展示状态，视图切换时重绘对应区块。
type Screen struct {
	out            io.Writer
	view           View
	activeDocument string
	fileLabel      string
	preloader      bool
	success        bool
	width          int
}

// NewScreen 创建屏幕
func NewScreen(out io.Writer) *Screen {
	width := 60
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}
	return &Screen{
		out:       out,
		view:      ViewUpload,
		fileLabel: defaultFileLabel,
		width:     width,
	}
}

// ShowUpload 切换到上传视图
// 重置上传区提示、清空待上传文件名、隐藏加载与成功指示。
func (s *Screen) ShowUpload() {
	s.view = ViewUpload
	s.activeDocument = ""
	s.fileLabel = defaultFileLabel
	s.preloader = false
	s.success = false

	fmt.Fprintln(s.out)
	headerStyle.Fprintln(s.out, "📄 Document Upload")
	fmt.Fprintln(s.out, s.separator())
	accentStyle.Fprintf(s.out, "  %s\n", s.fileLabel)
}

// ShowChat 切换到聊天视图并显示当前文档名
func (s *Screen) ShowChat(documentName string) {
	s.view = ViewChat
	s.activeDocument = documentName

	fmt.Fprintln(s.out)
	headerStyle.Fprintln(s.out, "💬 Chat with Document")
	fmt.Fprintln(s.out, s.separator())
	accentStyle.Fprintf(s.out, "  📎 %s\n", documentName)
}

// View 返回当前视图
func (s *Screen) View() View {
	return s.view
}

// ActiveDocument 返回聊天视图显示的文档名
func (s *Screen) ActiveDocument() string {
	return s.activeDocument
}

// FileLabel 返回上传区当前提示
func (s *Screen) FileLabel() string {
	return s.fileLabel
}

// SetFileLabel 更新上传区提示（选中文件后显示文件名）
func (s *Screen) SetFileLabel(label string) {
	s.fileLabel = label
	accentStyle.Fprintf(s.out, "  %s\n", label)
}

// SetPreloader 显示/隐藏上传加载指示
func (s *Screen) SetPreloader(on bool) {
	s.preloader = on
	if on {
		fmt.Fprintln(s.out, "⏳ 正在上传...")
	}
}

// Preloader 加载指示是否可见
func (s *Screen) Preloader() bool {
	return s.preloader
}

// SetSuccess 显示/隐藏上传成功指示
func (s *Screen) SetSuccess(on bool) {
	s.success = on
	if on {
		fmt.Fprintln(s.out, "✅ 上传成功")
	}
}

// Success 成功指示是否可见
func (s *Screen) Success() bool {
	return s.success
}

// RenderDocumentList 渲染文档面板
func (s *Screen) RenderDocumentList(lines []string) {
	fmt.Fprintln(s.out)
	headerStyle.Fprintln(s.out, "📂 My Documents")
	for _, line := range lines {
		fmt.Fprintln(s.out, line)
	}
}

// Hint 打印操作提示
func (s *Screen) Hint(text string) {
	dimStyle.Fprintf(s.out, "%s\n", text)
}

// Out 返回输出目标（供同包的消息流与对话复用）
func (s *Screen) Out() io.Writer {
	return s.out
}

func (s *Screen) separator() string {
	return strings.Repeat("─", s.width)
}
