// Package console 提供本地调试用的交互式控制台，
// 在不接入宿主平台的情况下反复调用插件工具、查看输出。
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"wechat-articles/internal/provider"
	"wechat-articles/internal/tools"
)

// 单次工具调用的超时时间，覆盖公众平台接口可能的多次请求
const invokeTimeout = time.Minute

const helpMarkdown = `# 调试台帮助

## 调用工具

- ` + "`wechat_articles {\"action\":\"get_article_urls\",\"cookie\":\"...\"}`" + `
- ` + "`wechat_articles action=get_article_urls cookie=... token=... nickname=... biz=...`" + `

key=value 形式下，纯数字的值按数字传入，例如 ` + "`count=3`" + `。

## 命令

- ` + "`/tools`" + ` 列出可用工具
- ` + "`/clear`" + ` 清空屏幕
- ` + "`/quit`" + ` 退出

## 快捷键

- ` + "`Enter`" + ` 执行
- ` + "`Ctrl+C`" + ` 退出
- ` + "`Ctrl+L`" + ` 清空
- ` + "`Ctrl+U`" + ` / ` + "`Ctrl+D`" + ` 滚动历史
`

// entry 代表控制台中的一条记录：一次输入或一段输出
type entry struct {
	Prompt    string // 用户敲下的命令，系统输出为空
	Output    string
	IsError   bool
	Timestamp time.Time
}

// Model 是控制台的Bubble Tea模型
type Model struct {
	// 组件
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// 状态
	entries    []entry
	ready      bool
	quitting   bool
	processing bool
	width      int
	height     int

	// 工具调用入口
	provider *provider.Provider

	// 渲染器
	renderer *glamour.TermRenderer

	// 样式
	promptStyle lipgloss.Style
	errorStyle  lipgloss.Style
	systemStyle lipgloss.Style
	inputStyle  lipgloss.Style
	helpStyle   lipgloss.Style
}

// invokeResultMsg 承载一次异步工具调用的结果
type invokeResultMsg struct {
	messages []tools.Message
	err      error
}

// NewModel 创建控制台模型
func NewModel(p *provider.Provider) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "输入 <工具名> <参数>，或 /help 查看帮助"
	ta.Focus()
	ta.Prompt = "┃ "
	ta.CharLimit = 2000
	ta.SetWidth(80)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	// 单行输入，Enter直接执行
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffff00"))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("创建Markdown渲染器失败: %w", err)
	}

	promptStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ff00")).
		Bold(true).
		MarginLeft(1)

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff5f5f")).
		MarginLeft(1)

	systemStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		MarginLeft(1)

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Padding(0, 1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#626262")).
		MarginLeft(1)

	m := &Model{
		viewport:    vp,
		textarea:    ta,
		spinner:     sp,
		entries:     make([]entry, 0),
		provider:    p,
		renderer:    renderer,
		promptStyle: promptStyle,
		errorStyle:  errorStyle,
		systemStyle: systemStyle,
		inputStyle:  inputStyle,
		helpStyle:   helpStyle,
	}

	m.addWelcomeEntry()

	return m, nil
}

// addWelcomeEntry 添加欢迎信息
func (m *Model) addWelcomeEntry() {
	definitions := m.provider.ToolDefinitions()
	names := make([]string, 0, len(definitions))
	for _, def := range definitions {
		names = append(names, def.Name)
	}

	welcome := fmt.Sprintf("🔌 微信公众号文章插件调试台\n可用工具: %s\n\n输入 <工具名> {JSON参数} 或 <工具名> key=value ... 调用工具\n输入 /help 查看帮助",
		strings.Join(names, ", "))

	m.entries = append(m.entries, entry{
		Output:    welcome,
		Timestamp: time.Now(),
	})

	m.updateViewport()
}

// Init 初始化模型
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update 处理消息更新
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width

		// 调整各组件大小
		headerHeight := 1
		helpHeight := 1
		inputHeight := 3
		viewportHeight := m.height - headerHeight - helpHeight - inputHeight - 2

		m.viewport.Width = m.width - 2
		m.viewport.Height = viewportHeight

		m.textarea.SetWidth(m.width - 4)
		m.textarea.SetHeight(1)

		if !m.ready {
			m.ready = true
		}

		m.updateViewport()

	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case msg.Type == tea.KeyCtrlL:
			m.entries = make([]entry, 0)
			m.addWelcomeEntry()
			return m, nil

		case msg.Type == tea.KeyEnter:
			return m.submit()

		case msg.Type == tea.KeyCtrlU:
			m.viewport.LineUp(5)
			return m, nil

		case msg.Type == tea.KeyCtrlD:
			m.viewport.LineDown(5)
			return m, nil

			// 其他键盘事件由子组件处理
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case invokeResultMsg:
		m.processing = false
		if msg.err != nil {
			m.addEntry(entry{
				Output:    fmt.Sprintf("调用失败: %v", msg.err),
				IsError:   true,
				Timestamp: time.Now(),
			})
		} else {
			m.addEntry(entry{
				Output:    formatMessages(msg.messages),
				Timestamp: time.Now(),
			})
		}
		return m, nil
	}

	// 更新子组件
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// View 渲染界面
func (m *Model) View() string {
	if m.quitting {
		return "再见!\n"
	}

	if !m.ready {
		return "\n正在初始化..."
	}

	header := m.systemStyle.Render("wechat-articles 插件调试台")

	entriesView := m.viewport.View()

	var statusLine string
	if m.processing {
		statusLine = m.spinner.View() + m.systemStyle.Render("正在调用工具...")
	}

	inputArea := m.inputStyle.Render(m.textarea.View())

	help := m.helpStyle.Render("Enter: 执行 | /help: 帮助 | Ctrl+C: 退出 | Ctrl+L: 清空 | Ctrl+U/D: 滚动")

	var sections []string
	sections = append(sections, header)
	sections = append(sections, entriesView)
	if statusLine != "" {
		sections = append(sections, statusLine)
	}
	sections = append(sections, inputArea)
	sections = append(sections, help)

	return strings.Join(sections, "\n")
}

// addEntry 追加一条记录并刷新视口
func (m *Model) addEntry(e entry) {
	m.entries = append(m.entries, e)
	m.updateViewport()
}

// updateViewport 更新视口内容
func (m *Model) updateViewport() {
	var content strings.Builder

	for i, e := range m.entries {
		if i > 0 {
			content.WriteString("\n")
		}

		timestamp := e.Timestamp.Format("15:04:05")

		if e.Prompt != "" {
			header := m.promptStyle.Render(fmt.Sprintf("> %s [%s]", e.Prompt, timestamp))
			content.WriteString(header + "\n")
		}

		if e.Output != "" {
			if e.IsError {
				content.WriteString(m.errorStyle.Render(e.Output) + "\n")
			} else {
				content.WriteString(e.Output + "\n")
			}
		}
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// submit 解析并执行当前输入
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.processing {
		return m, nil
	}

	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}

	m.textarea.Reset()

	if strings.HasPrefix(input, "/") {
		return m.runSlashCommand(input)
	}

	toolName, arguments, err := parseInvocation(input)
	if err != nil {
		m.addEntry(entry{Prompt: input, Timestamp: time.Now()})
		m.addEntry(entry{
			Output:    fmt.Sprintf("%v\n输入 /help 查看调用格式", err),
			IsError:   true,
			Timestamp: time.Now(),
		})
		return m, nil
	}

	m.addEntry(entry{Prompt: input, Timestamp: time.Now()})
	m.processing = true
	return m, tea.Batch(m.spinner.Tick, m.invokeTool(toolName, arguments))
}

// runSlashCommand 处理以/开头的控制台命令
func (m *Model) runSlashCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/exit":
		m.quitting = true
		return m, tea.Quit

	case "/clear":
		m.entries = make([]entry, 0)
		m.addWelcomeEntry()
		return m, nil

	case "/help":
		output := helpMarkdown
		if rendered, err := m.renderer.Render(helpMarkdown); err == nil {
			output = rendered
		}
		m.addEntry(entry{Output: strings.TrimRight(output, "\n"), Timestamp: time.Now()})
		return m, nil

	case "/tools":
		definitions := m.provider.ToolDefinitions()
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("已注册工具 (%d个):", len(definitions)))
		for _, def := range definitions {
			sb.WriteString(fmt.Sprintf("\n🔧 %s: %s", def.Name, def.Description))
		}
		m.addEntry(entry{Output: sb.String(), Timestamp: time.Now()})
		return m, nil

	default:
		m.addEntry(entry{
			Output:    fmt.Sprintf("未知命令: %s，输入 /help 查看帮助", input),
			IsError:   true,
			Timestamp: time.Now(),
		})
		return m, nil
	}
}

// invokeTool 异步调用工具
func (m *Model) invokeTool(toolName string, arguments map[string]any) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), invokeTimeout)
		defer cancel()

		messages, err := m.provider.InvokeTool(ctx, toolName, arguments)
		return invokeResultMsg{messages: messages, err: err}
	}
}

// parseInvocation 把一行输入解析成工具名和参数
func parseInvocation(input string) (string, map[string]any, error) {
	name, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	arguments := make(map[string]any)
	if rest == "" {
		return name, arguments, nil
	}

	if strings.HasPrefix(rest, "{") {
		if err := json.Unmarshal([]byte(rest), &arguments); err != nil {
			return "", nil, fmt.Errorf("JSON参数无效: %v", err)
		}
		return name, arguments, nil
	}

	for _, pair := range strings.Fields(rest) {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return "", nil, fmt.Errorf("无效的参数格式: %s", pair)
		}
		// 与JSON解码保持一致，数字落成float64
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			arguments[key] = n
		} else {
			arguments[key] = value
		}
	}
	return name, arguments, nil
}

// formatMessages 把工具输出的消息拼成展示文本
func formatMessages(messages []tools.Message) string {
	parts := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch msg.Type {
		case tools.MessageTypeJSON:
			if formatted, err := json.MarshalIndent(msg.Data, "", "  "); err == nil {
				parts = append(parts, string(formatted))
			} else {
				parts = append(parts, fmt.Sprintf("%v", msg.Data))
			}
		default:
			parts = append(parts, msg.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Run 启动交互式控制台
func Run(p *provider.Provider) error {
	model, err := NewModel(p)
	if err != nil {
		return fmt.Errorf("初始化调试台失败: %w", err)
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	return err
}
