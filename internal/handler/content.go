package handler

import (
	"fmt"

	"spoilerbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// contentFromMessage maps an incoming message to spoiler content. Message
// kinds the bot cannot resend become domain.Unsupported.
func contentFromMessage(m *tele.Message) domain.Content {
	switch {
	case m == nil:
		return domain.Unsupported{Reason: "empty message"}
	// GIFs arrive with both Animation and Document set
	case m.Animation != nil:
		return domain.Animation{FileID: m.Animation.FileID, Caption: m.Caption}
	case m.Audio != nil:
		return domain.Audio{FileID: m.Audio.FileID, Caption: m.Caption}
	case m.Contact != nil:
		return domain.Contact{
			PhoneNumber: m.Contact.PhoneNumber,
			FirstName:   m.Contact.FirstName,
			LastName:    m.Contact.LastName,
		}
	case m.Dice != nil:
		return domain.Dice{Emoji: string(m.Dice.Type), Value: m.Dice.Value}
	case m.Document != nil:
		return domain.Document{FileID: m.Document.FileID, Caption: m.Caption}
	case m.Venue != nil:
		return domain.Unsupported{Reason: "venue"}
	case m.Location != nil:
		return domain.Location{Latitude: m.Location.Lat, Longitude: m.Location.Lng}
	case m.Photo != nil:
		return domain.Photo{FileIDs: []string{m.Photo.FileID}, Caption: m.Caption}
	case m.Sticker != nil:
		return domain.Sticker{FileID: m.Sticker.FileID}
	case m.VideoNote != nil:
		return domain.VideoNote{FileID: m.VideoNote.FileID}
	case m.Video != nil:
		return domain.Video{FileID: m.Video.FileID, Caption: m.Caption}
	case m.Voice != nil:
		return domain.Voice{FileID: m.Voice.FileID, Caption: m.Caption}
	case m.Poll != nil:
		return domain.Unsupported{Reason: "poll"}
	case m.Text != "":
		return domain.Text{Value: m.Text}
	default:
		return domain.Unsupported{Reason: "unknown message kind"}
	}
}

// outgoing returns what to pass to Send, in order, to reproduce content.
// Dice go out as text because sending a die rolls a new one.
func outgoing(content domain.Content) []interface{} {
	switch c := content.(type) {
	case domain.Text:
		return []interface{}{c.Value}
	case domain.RawString:
		return []interface{}{c.Value}
	case domain.Animation:
		return []interface{}{&tele.Animation{File: tele.File{FileID: c.FileID}, Caption: c.Caption}}
	case domain.Audio:
		return []interface{}{&tele.Audio{File: tele.File{FileID: c.FileID}, Caption: c.Caption}}
	case domain.Contact:
		return []interface{}{&tele.Contact{
			PhoneNumber: c.PhoneNumber,
			FirstName:   c.FirstName,
			LastName:    c.LastName,
		}}
	case domain.Dice:
		return []interface{}{fmt.Sprintf("%s %d", c.Emoji, c.Value)}
	case domain.Document:
		return []interface{}{&tele.Document{File: tele.File{FileID: c.FileID}, Caption: c.Caption}}
	case domain.Location:
		return []interface{}{&tele.Location{Lat: c.Latitude, Lng: c.Longitude}}
	case domain.Photo:
		out := make([]interface{}, 0, len(c.FileIDs))
		for i, id := range c.FileIDs {
			photo := &tele.Photo{File: tele.File{FileID: id}}
			if i == 0 {
				photo.Caption = c.Caption
			}
			out = append(out, photo)
		}
		return out
	case domain.Sticker:
		return []interface{}{&tele.Sticker{File: tele.File{FileID: c.FileID}}}
	case domain.Video:
		return []interface{}{&tele.Video{File: tele.File{FileID: c.FileID}, Caption: c.Caption}}
	case domain.VideoNote:
		return []interface{}{&tele.VideoNote{File: tele.File{FileID: c.FileID}}}
	case domain.Voice:
		return []interface{}{&tele.Voice{File: tele.File{FileID: c.FileID}, Caption: c.Caption}}
	default:
		return nil
	}
}
