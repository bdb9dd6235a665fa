package handler

import "fmt"

// Protocol strings shared with Telegram clients through deep links,
// inline queries and callback data
const (
	// InlineQuerySeparator prefixes spoiler ids in queries, payloads and callbacks
	InlineQuerySeparator = "id-_-"
	// MajorSpoilerPrefix marks callback data of a double-tap spoiler
	MajorSpoilerPrefix = "maj_"
	// CreateCustomSpoiler is the /start payload sent by the switch-PM button
	CreateCustomSpoiler = "create_custom_spoiler"

	// MaxAlertLength is the longest text Telegram shows in a callback alert
	MaxAlertLength = 200
)

const (
	msgPreparingASpoiler = "Preparing a spoiler. To cancel, type /cancel.\n\n" +
		"First send the content to be spoiled. It can be text, photo, or any other media."
	msgCreationCancelled = "The spoiler creation has been cancelled."
	msgNothingToCancel   = "You were not creating a spoiler."
	msgSpoilerReady      = "Done! Your advanced spoiler is ready."
	msgSpoilerNotFound   = "Spoiler not found! It might have expired already..."
	msgTypeStart         = "Type /start to prepare an advanced spoiler with a custom title."
	msgNowSendATitle     = "Now send a title for the spoiler (maximum 256 characters).\n" +
		"It will be immediately visible and can be used to add a small description for your spoiler.\n" +
		"Type a dash (-) now if you do not want a title for your spoiler."
	msgTitleTooLong  = "That title is too long. Please send at most 256 characters."
	msgUnsupported   = "This kind of message cannot be spoiled. Please send text or media."
	msgTapAgain      = "Please tap again to see the spoiler"
	msgSomethingWent = "Something went wrong. Please try again later."

	msgUnknownCommand = "Unknown command. Send /cancel to stop preparing a spoiler.\n" +
		"For an untitled spoiler with a custom expiry, send a dash with the duration, e.g. -/5m."

	btnSendIt       = "Send it"
	btnShowSpoiler  = "Show spoiler"
	btnDoubleTap    = "Double tap to show spoiler"
	switchPMText    = "Advanced spoiler (media etc.)…"
	minorTitle      = "Minor Spoiler"
	minorDesc       = "Text, single tap"
	minorThumb      = "https://i.imgur.com/csh5H5O.png"
	majorTitle      = "Major Spoiler"
	majorDesc       = "Text, double tap"
	majorThumb      = "https://i.imgur.com/3qqCZZk.png"
	thumbSize       = 512
	minorHeaderHTML = "<i>Minor spoiler!</i>"
	majorHeaderHTML = "<b>Major spoiler!</b>"
)

func helpText(botUsername string) string {
	return fmt.Sprintf(`Type /start to prepare an advanced spoiler with a custom title.

You can type quick spoilers by using @%[1]s in inline mode:
@%[1]s your spoiler message…

Custom titles can also be used from inline mode as follows:
@%[1]s title for the spoiler:::contents of the spoiler
Note that the title will be immediately visible!

Append a duration such as /10m, /2h or /7d to choose when the spoiler expires.`, botUsername)
}
