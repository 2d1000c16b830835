package locale

// Pick returns the text matching the request language, defaulting to Ukrainian.
func Pick(language, english, ukrainian string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return ukrainian
	}
	if ukrainian != "" {
		return ukrainian
	}
	return english
}

// Message keys for user-facing API errors.
const (
	MsgNotFound            = "not_found"
	MsgInvalidPayload      = "invalid_payload"
	MsgInvalidID           = "invalid_id"
	MsgContactRequired     = "contact_required"
	MsgContactEmailInvalid = "contact_email_invalid"
	MsgContactFailed       = "contact_failed"
	MsgRateLimited         = "rate_limited"
	MsgUnauthorized        = "unauthorized"
	MsgInvalidCredentials  = "invalid_credentials"
	MsgSlugTaken           = "slug_taken"
	MsgSlugInvalid         = "slug_invalid"
	MsgInternal            = "internal"
)

var messages = map[string][2]string{
	MsgNotFound:            {"Не знайдено.", "Not found."},
	MsgInvalidPayload:      {"Некоректні дані запиту.", "Invalid request payload."},
	MsgInvalidID:           {"Некоректний ідентифікатор.", "Invalid identifier."},
	MsgContactRequired:     {"Усі поля обов'язкові.", "All fields are required."},
	MsgContactEmailInvalid: {"Некоректна адреса електронної пошти.", "Invalid email address."},
	MsgContactFailed:       {"Не вдалося надіслати повідомлення.", "Failed to send message."},
	MsgRateLimited:         {"Забагато запитів. Спробуйте пізніше.", "Too many requests. Please try again later."},
	MsgUnauthorized:        {"Потрібна авторизація.", "Authentication required."},
	MsgInvalidCredentials:  {"Невірне ім'я користувача або пароль.", "Invalid username or password."},
	MsgSlugTaken:           {"Такий slug уже використовується.", "Slug is already in use."},
	MsgSlugInvalid:         {"Некоректний slug.", "Invalid slug."},
	MsgInternal:            {"Внутрішня помилка сервера.", "Internal server error."},
}

// T returns the message for key in language. Unknown keys are returned as is.
func T(language, key string) string {
	pair, ok := messages[key]
	if !ok {
		return key
	}
	return Pick(language, pair[1], pair[0])
}
