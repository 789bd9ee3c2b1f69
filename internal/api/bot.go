package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "coffee-grader/internal/application"
	"coffee-grader/internal/domain/entity"
	"coffee-grader/internal/domain/port"
)

const (
	msgStart = `👋 Hi! I grade green coffee bean samples from photos.

📸 Send me a photo of your sample tray and I will count the beans, find the defects and suggest an SCA-style grade.

📋 Commands:
/grade - start grading a sample
/help - usage notes
/cancel - cancel the current operation`

	msgHelp = `ℹ️ How to use the bot:

1️⃣ Send a photo of the bean sample
2️⃣ I detect and classify every defect
3️⃣ You get the grade, an annotated photo and a report card

💡 Tips:
• Spread the beans in a single layer
• Shoot on a plain light background
• Keep the photo sharp and evenly lit

📋 Commands:
/grade - start grading
/cancel - cancel the operation`

	msgAwaitingSample  = "📸 Send a photo of the bean sample to grade.\nส่งรูปตัวอย่างเมล็ดกาแฟเพื่อตรวจเกรด"
	msgCancelled       = "❌ Operation cancelled. Send /grade to start a new check."
	msgSendPhoto       = "📸 Please send a sample photo to grade, or /help for instructions."
	msgUnknownCommand  = "❓ Unknown command. Use /help for the command list."
	msgProcessing      = "⏳ Analyzing the sample...\nกำลังวิเคราะห์ตัวอย่าง..."
	msgProcessingError = "⚠️ Could not process the sample. Please try another photo.\nไม่สามารถประมวลผลได้ กรุณาลองใหม่"
)

// Bot is the Telegram front end of the grading pipeline.
type Bot struct {
	api         *tgbotapi.BotAPI
	users       *app.UserService
	inspections *app.InspectionService
	blobs       port.BlobStore
}

// NewBot authorizes against the Telegram API.
func NewBot(token string, users *app.UserService, inspections *app.InspectionService, blobs port.BlobStore) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	return &Bot{
		api:         botAPI,
		users:       users,
		inspections: inspections,
		blobs:       blobs,
	}, nil
}

// Run processes updates until the channel closes.
func (b *Bot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	ctx := context.Background()

	for update := range updates {
		if update.Message == nil {
			continue
		}

		b.handleMessage(ctx, update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		log.Printf("Error getting user: %v", err)
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg, user)
		return
	}

	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	switch msg.Command() {
	case "start":
		b.users.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "grade":
		b.users.BeginGrading(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgAwaitingSample)

	case "cancel":
		b.users.Cancel(ctx, user.ID, user.ChatID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	b.sendMessage(msg.Chat.ID, msgProcessing)

	// Largest resolution variant comes last.
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(photo.FileID)
	if err != nil {
		log.Printf("Error downloading photo: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		return
	}

	insp, err := b.inspections.AcceptSamplePhoto(ctx, msg.From.ID, msg.Chat.ID, imageData)
	if err != nil {
		log.Printf("Error grading sample: %v", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	b.sendMessage(msg.Chat.ID, formatVerdict(insp))
	b.sendArtifacts(ctx, msg.Chat.ID, insp)
}

// formatVerdict builds the bilingual grading verdict text.
func formatVerdict(insp *entity.Inspection) string {
	total := insp.Record.Category1Count + insp.Record.Category2Count
	return fmt.Sprintf(
		"☕ Grading complete / ผลการตรวจเกรด\n\n"+
			"Beans detected (จำนวนเมล็ด): %d\n"+
			"Defects (ข้อบกพร่อง): %d (primary %d, secondary %d)\n"+
			"Grade: %s\n"+
			"เกรด: %s\n"+
			"Confidence (ความมั่นใจ): %.0f%%",
		insp.Record.DetectedBeans,
		total,
		insp.Record.Category1Count,
		insp.Record.Category2Count,
		insp.SuggestedGrade.Display(),
		insp.SuggestedGrade.NameThai(),
		insp.Record.ConfidenceScore*100,
	)
}

// sendArtifacts sends the annotated photo and the report card when
// they were rendered locally.
func (b *Bot) sendArtifacts(ctx context.Context, chatID int64, insp *entity.Inspection) {
	if b.blobs == nil {
		return
	}

	id := insp.Record.RequestID
	if insp.Record.AnnotatedImageURL != "" {
		if data, err := b.blobs.Get(ctx, "annotated/"+id+"_annotated.jpg"); err == nil {
			b.sendPhoto(chatID, id+"_annotated.jpg", data, "Detected defects / ตำแหน่งข้อบกพร่อง")
		}
	}
	if insp.SummaryImageURL != "" {
		if data, err := b.blobs.Get(ctx, "summaries/"+id+"_summary.jpg"); err == nil {
			b.sendPhoto(chatID, id+"_summary.jpg", data, "Grading summary / สรุปผลการเกรด")
		}
	}
}

// downloadFile fetches a file from the Telegram file API.
func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	fileURL := file.Link(b.api.Token)

	resp, err := http.Get(fileURL)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) sendPhoto(chatID int64, name string, data []byte, caption string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		log.Printf("Error sending photo: %v", err)
	}
}
