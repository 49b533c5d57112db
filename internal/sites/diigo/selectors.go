package diigo

const (
	DefaultBaseURL = "https://www.diigo.com"
	LoginURL       = DefaultBaseURL + "/sign-in"

	selURL         = `#url, input[name="url"]`
	selTitle       = `#title, input[name="title"]`
	selDescription = `#description, textarea[name="description"]`
	selTags        = `#tags, input[name="tags"]`
	selPublic      = `#private_no, input[name="private"][value="0"]`
	selSave        = `#saveBtn, button[type="submit"]`

	selSaved     = `.savedMessage, .bookmark-saved, .alert-success`
	selSaveError = `.errorMessage, .alert-danger`
	selSignIn    = `form[action*="sign-in"], #loginForm`
)

var savedPhrases = []string{"Saved", "bookmark has been saved"}
