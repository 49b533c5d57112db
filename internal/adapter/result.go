package adapter

// ErrorKind classifies a failed publish
type ErrorKind string

const (
	KindNotImplemented ErrorKind = "not_implemented"
	KindUnknownSite    ErrorKind = "unknown_site"
	KindValidation     ErrorKind = "validation"
	KindBrowser        ErrorKind = "browser"
	KindNavigation     ErrorKind = "navigation"
	KindAuth           ErrorKind = "auth"
	KindSubmission     ErrorKind = "submission"
	KindVerification   ErrorKind = "verification"
	KindAPI            ErrorKind = "api"
	KindLLM            ErrorKind = "llm"
	KindStore          ErrorKind = "store"
	KindNoCandidate    ErrorKind = "no_candidate"
	KindDuplicate      ErrorKind = "duplicate"
)

// ErrNotImplementedMessage is returned by Base.Publish
const ErrNotImplementedMessage = "Publish method not implemented!"

// Result is either Ok or Err
type Result interface {
	Summary() Summary
	isResult()
}

// Ok is a successful publish
type Ok struct {
	PostURL       string
	ScreenshotURL string
}

// Err is a failed publish
type Err struct {
	Kind    ErrorKind
	Message string
}

func (Ok) isResult()  {}
func (Err) isResult() {}

func (e Err) Error() string { return string(e.Kind) + ": " + e.Message }

// Summary is the flat JSON form of a Result
type Summary struct {
	Success       bool      `json:"success"`
	PostURL       string    `json:"postUrl,omitempty"`
	ScreenshotURL string    `json:"screenshotUrl,omitempty"`
	Error         string    `json:"error,omitempty"`
	Kind          ErrorKind `json:"kind,omitempty"`
}

// Summary reports a successful outcome.
func (o Ok) Summary() Summary {
	return Summary{Success: true, PostURL: o.PostURL, ScreenshotURL: o.ScreenshotURL}
}

// Summary reports a failed outcome.
func (e Err) Summary() Summary {
	return Summary{Success: false, Error: e.Message, Kind: e.Kind}
}

// Succeeded reports whether r is an Ok
func Succeeded(r Result) bool {
	_, ok := r.(Ok)
	return ok
}
