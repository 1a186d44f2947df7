package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/engine"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/imageutil"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/logger"
	"github.com/iWorld-y/plant_radar/app/plant_radar/pkg/model"
)

const helpText = `Send me a photo of a plant (or an image file) and I will look for diseases, pests and other health issues.

Commands:
/start - introduction
/help - this message`

// Diagnoser 图片诊断能力，由 engine.Engine 实现
type Diagnoser interface {
	Diagnose(ctx context.Context, img []byte) (*model.Diagnosis, error)
}

// API Bot 用到的 Telegram 接口子集，*tgbotapi.BotAPI 实现了它
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot 长轮询 Telegram 更新，把收到的图片交给 Diagnoser
type Bot struct {
	api      API
	diag     Diagnoser
	client   *http.Client
	maxBytes int64
	wg       sync.WaitGroup
}

// NewBot 使用 token 连接 Telegram
func NewBot(token string, debug bool, diag Diagnoser, maxBytes int64) (*Bot, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram token is empty")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram 连接失败: %w", err)
	}
	api.Debug = debug
	logger.Log.Infof("Telegram bot 已登录: @%s", api.Self.UserName)
	return New(api, diag, maxBytes), nil
}

// New 使用已有的 API 客户端创建 Bot
func New(api API, diag Diagnoser, maxBytes int64) *Bot {
	return &Bot{
		api:      api,
		diag:     diag,
		client:   &http.Client{Timeout: 60 * time.Second},
		maxBytes: maxBytes,
	}
}

// Run 长轮询直到 ctx 取消，返回前等待进行中的诊断结束
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("polling: context cancelled")
			return nil
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := b.api.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			logger.Log.Warnf("polling error: %v; retry in %v", err, d)
			if !sleep(ctx, d) {
				return nil
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			b.wg.Add(1)
			go func(upd tgbotapi.Update) {
				defer b.wg.Done()
				b.HandleUpdate(ctx, upd)
			}(upd)
		}

		if len(updates) == 0 && !sleep(ctx, 200*time.Millisecond) {
			return nil
		}
	}
}

// HandleUpdate 处理单条更新：命令、图片或其他文本
func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	cid := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "help":
			b.send(cid, helpText)
		default:
			b.send(cid, "Unknown command. Try /help")
		}
		return
	}

	fileID := imageFileID(msg)
	if fileID == "" {
		b.send(cid, "Please send a photo of the plant you want me to check.")
		return
	}

	_, _ = b.api.Send(tgbotapi.NewChatAction(cid, tgbotapi.ChatTyping))

	img, err := b.download(ctx, fileID)
	if err != nil {
		logger.Log.Errorf("下载图片失败 chat=%d: %v", cid, err)
		b.send(cid, userError(err))
		return
	}

	d, err := b.diag.Diagnose(ctx, img)
	if err != nil {
		logger.Log.Errorf("诊断失败 chat=%d: %v", cid, err)
		b.send(cid, userError(err))
		return
	}

	reply := tgbotapi.NewMessage(cid, FormatMessage(d))
	reply.ParseMode = tgbotapi.ModeHTML
	reply.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(reply); err != nil {
		logger.Log.Errorf("发送诊断结果失败 chat=%d: %v", cid, err)
	}
}

// imageFileID 取最大尺寸的照片，或 MIME 为 image/* 的文件
func imageFileID(msg *tgbotapi.Message) string {
	if n := len(msg.Photo); n > 0 {
		return msg.Photo[n-1].FileID
	}
	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") {
		return doc.FileID
	}
	return ""
}

func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var r io.Reader = resp.Body
	if b.maxBytes > 0 {
		r = io.LimitReader(resp.Body, b.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if b.maxBytes > 0 && int64(len(data)) > b.maxBytes {
		return nil, engine.ErrImageTooLarge
	}
	return data, nil
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Log.Warnf("发送消息失败 chat=%d: %v", chatID, err)
	}
}

func userError(err error) string {
	switch {
	case errors.Is(err, imageutil.ErrNotImage), errors.Is(err, imageutil.ErrCorruptImage):
		return "That file doesn't look like a valid image. Please send a JPG, PNG or WEBP photo."
	case errors.Is(err, engine.ErrImageTooLarge):
		return "The image is too large. Please send a smaller photo."
	case errors.Is(err, engine.ErrEmptyImage):
		return "The image is empty."
	case errors.Is(err, engine.ErrEmptyAnalysis):
		return noAnalysis
	default:
		return "Failed to analyze the image. Please try again later."
	}
}

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
