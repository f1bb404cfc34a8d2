// Package cmd 实现 CLI 命令
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"doc-chat-cli/internal/api"
	"doc-chat-cli/internal/config"
	"doc-chat-cli/internal/controller"
	"doc-chat-cli/internal/logger"
	"doc-chat-cli/internal/loop"
	"doc-chat-cli/internal/nav"
	"doc-chat-cli/internal/state"
	"doc-chat-cli/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "doc-chat",
	Short: "Doc Chat - 与上传文档对话的终端客户端",
	Long: `Doc Chat CLI 客户端

上传 PDF 文档并围绕选中的文档进行持续对话。

直接运行即可进入交互界面；用 --open 或 --chat 可以
直接恢复到某个文档的聊天（等价于带 chat 参数打开页面）。`,
	Run: runInteractive,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// 全局参数
	rootCmd.PersistentFlags().StringP("server", "s", "", "服务器地址 (默认: http://localhost:8000)")
	rootCmd.Flags().String("open", "", "初始位置，例如 /index/?chat=<文档ID>")
	rootCmd.Flags().String("chat", "", "直接打开指定文档的聊天（--open 的简写）")
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化配置失败: %v\n", err)
		os.Exit(1)
	}

	// 如果指定了服务器地址，更新配置
	if server, _ := rootCmd.PersistentFlags().GetString("server"); server != "" {
		config.SetServerURL(server)
	}
}

// runInteractive 交互式主流程
func runInteractive(cmd *cobra.Command, args []string) {
	printBanner()

	logger.Init(config.LogPath())
	defer logger.Sync()

	clientID, err := config.GetClientUUID()
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  获取客户端标识失败: %v\n", err)
	}

	loc := initialLocation(cmd)
	apiClient := api.NewClient(
		config.GetServerURL(),
		config.GetUploadPath(),
		config.GetCSRFToken(),
		clientID,
	)
	screen := ui.NewScreen(os.Stdout)
	store := state.NewStore(config.Dir())
	evLoop := loop.New()
	cons := newConsole()

	ctrl := controller.New(
		evLoop,
		apiClient,
		store,
		screen,
		loc,
		cons.Confirm,
		config.GetDefaultDocumentID(),
		config.GetDefaultDocumentName(),
	)
	ctrl.SetOnQuit(evLoop.Stop)

	fmt.Printf("📡 服务器: %s\n", config.GetServerURL())
	fmt.Println("─────────────────────────────────")

	evLoop.Post(ctrl.Bootstrap)

	// 标准输入是唯一的事件来源，逐行读取并投递到事件循环
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			if cons.deliver(line) {
				continue
			}
			evLoop.Post(func() {
				ctrl.HandleInput(line)
			})
		}
		evLoop.Stop()
	}()

	// 信号退出
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		evLoop.Stop()
	}()

	evLoop.Run()

	fmt.Println()
	fmt.Println("👋 再见！")
}

func printBanner() {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════╗")
	fmt.Println("║           📄 Doc Chat CLI 客户端                ║")
	fmt.Println("║                                                ║")
	fmt.Println("║        上传文档，围绕文档持续对话                 ║")
	fmt.Println("╚════════════════════════════════════════════════╝")
	fmt.Println()
}

// initialLocation 解析启动时的导航位置
func initialLocation(cmd *cobra.Command) *nav.Location {
	if chatID, _ := cmd.Flags().GetString("chat"); chatID != "" {
		loc := nav.NewIndex()
		loc.ReplaceQuery("chat", chatID)
		return loc
	}

	if open, _ := cmd.Flags().GetString("open"); open != "" {
		loc, err := nav.Parse(open)
		if err == nil {
			return loc
		}
		fmt.Fprintf(os.Stderr, "⚠️  无效的初始位置 %q，使用首页\n", open)
	}

	return nav.NewIndex()
}

// console 把确认对话接到持久输入流上
// 控制器在事件循环上发起确认时，下一行输入作为应答交付，
// 其间循环阻塞（模态语义），其余输入照常投递。
type console struct {
	mu        sync.Mutex
	prompting bool
	answerCh  chan string
}

func newConsole() *console {
	return &console{answerCh: make(chan string, 1)}
}

// Confirm 打印确认提示并等待下一行输入
func (cs *console) Confirm(title, message string) bool {
	fmt.Printf("❓ %s: %s [Y/n]: ", title, message)

	cs.mu.Lock()
	cs.prompting = true
	cs.mu.Unlock()

	answer := strings.TrimSpace(strings.ToLower(<-cs.answerCh))
	return answer == "" || answer == "y" || answer == "yes"
}

// deliver 尝试把一行输入交付给等待中的确认对话
func (cs *console) deliver(line string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.prompting {
		return false
	}
	cs.prompting = false
	cs.answerCh <- line
	return true
}
