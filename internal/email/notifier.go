package email

import (
	"context"
	"fmt"

	"fstr_backend/internal/logger"
)

// PerevalNotice - краткие сведения о новой записи для письма модераторам
type PerevalNotice struct {
	ID          uint
	BeautyTitle string
	Title       string
	Email       string
	Latitude    float64
	Longitude   float64
	Height      int
	Images      int
}

// ModerationNotifier сообщает модераторам о поступлении записи.
// Ошибки отправки только логируются: уведомление не влияет на результат подачи.
type ModerationNotifier struct {
	provider   Provider
	recipients []string
}

func NewModerationNotifier(provider Provider, recipients []string) *ModerationNotifier {
	return &ModerationNotifier{provider: provider, recipients: recipients}
}

// Enabled - есть кому и через что отправлять
func (n *ModerationNotifier) Enabled() bool {
	return n != nil && n.provider != nil && len(n.recipients) > 0
}

// NotifyNewPereval отправляет письмо синхронно; вызывающий решает, запускать ли его в горутине
func (n *ModerationNotifier) NotifyNewPereval(ctx context.Context, notice PerevalNotice) error {
	if !n.Enabled() {
		return nil
	}

	subject := fmt.Sprintf("Новый перевал #%d: %s", notice.ID, notice.Title)
	err := n.provider.SendTemplate(n.recipients, subject, TemplateNewPereval, TemplateData{
		"ID":          notice.ID,
		"BeautyTitle": notice.BeautyTitle,
		"Title":       notice.Title,
		"Email":       notice.Email,
		"Latitude":    notice.Latitude,
		"Longitude":   notice.Longitude,
		"Height":      notice.Height,
		"Images":      notice.Images,
	})
	if err != nil {
		logger.CtxWithError(ctx, "Failed to notify moderators", err, "pereval_id", notice.ID)
		return err
	}

	logger.CtxDebug(ctx, "Moderators notified", "pereval_id", notice.ID, "recipients", len(n.recipients))
	return nil
}
