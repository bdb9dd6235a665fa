package handler

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"spoilerbot/internal/domain"
	"spoilerbot/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleQuery handles inline queries
//
// A query "id-_-<id>" reuses an existing spoiler, e.g. one made in the
// private dialog and shared with the "Send it" button. Any other non-empty
// query becomes a quick text spoiler.
func (h *Handler) handleQuery(c tele.Context) error {
	query := c.Query()
	resp := &tele.QueryResponse{
		Results:           tele.Results{},
		IsPersonal:        true,
		SwitchPMText:      switchPMText,
		SwitchPMParameter: CreateCustomSpoiler,
	}

	if query == nil || strings.TrimSpace(query.Text) == "" {
		return c.Answer(resp)
	}

	spoiler, ok := h.spoilerFromQuery(c.Sender().ID, query.Text)
	if ok {
		resp.Results = spoilerResults(spoiler)
	}

	if err := c.Answer(resp); err != nil {
		h.logger.Error("Failed to answer inline query",
			zap.Int64("user_id", c.Sender().ID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (h *Handler) spoilerFromQuery(userID int64, text string) (domain.Spoiler, bool) {
	if strings.HasPrefix(text, InlineQuerySeparator) {
		return h.spoilerService.Spoiler(strings.TrimPrefix(text, InlineQuerySeparator))
	}

	spoiler, err := h.spoilerService.QuickSpoiler(userID, text)
	switch {
	case err == nil:
		return spoiler, true
	case errors.Is(err, service.ErrEmptySpoiler), errors.Is(err, service.ErrTitleTooLong):
		h.logger.Debug("Ignoring inline query", zap.Int64("user_id", userID), zap.Error(err))
	default:
		h.logger.Error("Failed to create quick spoiler", zap.Int64("user_id", userID), zap.Error(err))
	}
	return domain.Spoiler{}, false
}

// spoilerResults builds the minor and major articles for a spoiler
func spoilerResults(spoiler domain.Spoiler) tele.Results {
	minor := &tele.ArticleResult{
		Title:       minorTitle,
		Description: minorDesc,
		ThumbURL:    minorThumb,
		ThumbWidth:  thumbSize,
		ThumbHeight: thumbSize,
	}
	minor.SetResultID(uuid.NewString())
	minor.SetContent(&tele.InputTextMessageContent{
		Text:      articleText(minorHeaderHTML, spoiler),
		ParseMode: tele.ModeHTML,
	})
	minor.SetReplyMarkup(buttonMarkup(tele.InlineButton{
		Text: btnShowSpoiler,
		Data: revealData(spoiler.ID, false),
	}))

	major := &tele.ArticleResult{
		Title:       majorTitle,
		Description: majorDesc,
		ThumbURL:    majorThumb,
		ThumbWidth:  thumbSize,
		ThumbHeight: thumbSize,
	}
	major.SetResultID(uuid.NewString())
	major.SetContent(&tele.InputTextMessageContent{
		Text:      articleText(majorHeaderHTML, spoiler),
		ParseMode: tele.ModeHTML,
	})
	major.SetReplyMarkup(buttonMarkup(tele.InlineButton{
		Text: btnDoubleTap,
		Data: revealData(spoiler.ID, true),
	}))

	return tele.Results{minor, major}
}

// articleText renders the visible part of a spoiler message
func articleText(header string, spoiler domain.Spoiler) string {
	var b strings.Builder
	b.WriteString(header)
	if title := spoiler.TitleOrEmpty(); title != "" {
		fmt.Fprintf(&b, "\n<code>%s</code>", html.EscapeString(title))
	}
	if !spoiler.ExpiresAt.IsZero() {
		fmt.Fprintf(&b, "\n\n(Expires at %s)", spoiler.ExpiryString())
	}
	return b.String()
}

// revealData is the callback payload of a reveal button
func revealData(id string, major bool) string {
	data := InlineQuerySeparator + id
	if major {
		return MajorSpoilerPrefix + data
	}
	return data
}

// sendItMarkup offers to share a finished spoiler through inline mode
func sendItMarkup(id string) *tele.ReplyMarkup {
	return buttonMarkup(tele.InlineButton{
		Text:        btnSendIt,
		InlineQuery: InlineQuerySeparator + id,
	})
}

func buttonMarkup(btn tele.InlineButton) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{{btn}},
	}
}
