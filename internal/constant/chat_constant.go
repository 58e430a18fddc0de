package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"
)

const (
	DefaultChatTitle      = "New Chat"
	FileUploadTitle       = "File upload"
	ChatTitleMaxLen       = 30
	AttachedFilesMarker   = "\n\nAttached files:"
	EmptyReplyPlaceholder = "No response received"
)

// User-facing strings returned in place of a model reply when the provider
// call fails. Kept verbatim so the front-end renders them like any other reply.
const (
	ErrMsgEmptyPrompt   = "❌ Error: Empty message received."
	ErrMsgInvalidAPIKey = "❌ Error: Invalid API key. Please check your Gemini API key."
	ErrMsgModelNotFound = "❌ Error: Model not found. The Gemini model may not be available."
	ErrMsgAccessDenied  = "❌ Error: Access denied. Please check your API key permissions."
	ErrMsgQuotaExceeded = "❌ Error: API quota exceeded. Please check your usage limits."
)
