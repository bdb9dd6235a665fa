package domain

// ContentKind names a Content variant
type ContentKind string

const (
	KindText        ContentKind = "text"
	KindRawString   ContentKind = "raw_string"
	KindAnimation   ContentKind = "animation"
	KindAudio       ContentKind = "audio"
	KindContact     ContentKind = "contact"
	KindDice        ContentKind = "dice"
	KindDocument    ContentKind = "document"
	KindLocation    ContentKind = "location"
	KindPhoto       ContentKind = "photo"
	KindSticker     ContentKind = "sticker"
	KindVideo       ContentKind = "video"
	KindVideoNote   ContentKind = "video_note"
	KindVoice       ContentKind = "voice"
	KindUnsupported ContentKind = "unsupported"
)

// Content is the spoiled payload. The set of variants is closed: only the
// types in this file implement it.
//
// Media variants carry Telegram file ids only; the bot never downloads or
// inspects the files themselves.
type Content interface {
	Kind() ContentKind
	content()
}

// Text is text taken from a message the user sent
type Text struct {
	Value string
}

// RawString is text that did not come from a message, e.g. an inline query
type RawString struct {
	Value string
}

// Animation is a GIF or silent video
type Animation struct {
	FileID  string
	Caption string
}

// Audio is a music file
type Audio struct {
	FileID  string
	Caption string
}

// Contact is a shared phone contact
type Contact struct {
	PhoneNumber string
	FirstName   string
	LastName    string
}

// Dice is a thrown die and its result
type Dice struct {
	Emoji string
	Value int
}

// Document is a general file
type Document struct {
	FileID  string
	Caption string
}

// Location is a point on the map
type Location struct {
	Latitude  float32
	Longitude float32
}

// Photo holds the file ids of one or more photos
type Photo struct {
	FileIDs []string
	Caption string
}

// Sticker is a sticker
type Sticker struct {
	FileID string
}

// Video is a video file
type Video struct {
	FileID  string
	Caption string
}

// VideoNote is a round video message
type VideoNote struct {
	FileID string
}

// Voice is a voice message
type Voice struct {
	FileID  string
	Caption string
}

// Unsupported stands in for message kinds the bot cannot spoil
type Unsupported struct {
	Reason string
}

func (Text) Kind() ContentKind        { return KindText }
func (RawString) Kind() ContentKind   { return KindRawString }
func (Animation) Kind() ContentKind   { return KindAnimation }
func (Audio) Kind() ContentKind       { return KindAudio }
func (Contact) Kind() ContentKind     { return KindContact }
func (Dice) Kind() ContentKind        { return KindDice }
func (Document) Kind() ContentKind    { return KindDocument }
func (Location) Kind() ContentKind    { return KindLocation }
func (Photo) Kind() ContentKind       { return KindPhoto }
func (Sticker) Kind() ContentKind     { return KindSticker }
func (Video) Kind() ContentKind       { return KindVideo }
func (VideoNote) Kind() ContentKind   { return KindVideoNote }
func (Voice) Kind() ContentKind       { return KindVoice }
func (Unsupported) Kind() ContentKind { return KindUnsupported }

func (Text) content()        {}
func (RawString) content()   {}
func (Animation) content()   {}
func (Audio) content()       {}
func (Contact) content()     {}
func (Dice) content()        {}
func (Document) content()    {}
func (Location) content()    {}
func (Photo) content()       {}
func (Sticker) content()     {}
func (Video) content()       {}
func (VideoNote) content()   {}
func (Voice) content()       {}
func (Unsupported) content() {}

// TextValue returns the text of Text and RawString content.
// The second value is false for every other variant.
func TextValue(c Content) (string, bool) {
	switch v := c.(type) {
	case Text:
		return v.Value, true
	case RawString:
		return v.Value, true
	default:
		return "", false
	}
}
