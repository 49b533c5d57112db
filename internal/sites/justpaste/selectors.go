package justpaste

const (
	DefaultURL = "https://justpaste.it/"

	selTitle   = `#titleInput, input[name="title"]`
	selEditor  = `.mce-content-body, [contenteditable="true"]`
	selPublish = `.publishButton, button[type="submit"]`

	selPublished = `.articleContent, #articleContent`
	selError     = `.alert-danger, .errorMessage`
	selCaptcha   = `iframe[src*="recaptcha"], .g-recaptcha`
)
