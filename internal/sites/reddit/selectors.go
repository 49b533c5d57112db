package reddit

const (
	DefaultBaseURL = "https://old.reddit.com"
	LoginURL       = "https://www.reddit.com/login"

	selLinkTab = `.link-button, a.choice[href*="kind=link"]`
	selTextTab = `.text-button, a.choice[href*="kind=self"]`
	selURL     = `#url`
	selTitle   = `textarea[name="title"]`
	selText    = `textarea[name="text"]`
	selSubmit  = `button[name="submit"]`

	selPosted   = `.thing.link, .commentarea`
	selError    = `.error.field-title, .error.field-url, .error.RATELIMIT, .status.error`
	selLoggedIn = `form.logout, span.user a`
)
