package phpbb

const (
	loginPath   = "/ucp.php?mode=login"
	postingPath = "/posting.php?mode=post&f="

	selUsername = `#username`
	selPassword = `#password`
	selLogin    = `input[name="login"]`
	selLoggedIn = `a[href*="mode=logout"]`
	selLoginErr = `.error, #message .error`

	selSubject = `#subject`
	selMessage = `#message`
	selSubmit  = `input[name="post"]`

	selPosted    = `.postbody, #message p, .message-content`
	selPostError = `.error`
	selPermalink = `a[href*="viewtopic.php"]`
)

var postedPhrases = []string{"This message has been posted successfully", "has been posted successfully"}
