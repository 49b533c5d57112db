package pingomatic

const (
	selTitle   = `input[name="title"]`
	selBlogURL = `input[name="blogurl"]`
	selRSSURL  = `input[name="rssurl"]`
	selSubmit  = `input[type="submit"]`

	selResults = `#pingresults, .pingresult, #content h2`
	selError   = `.error, #error`
)

// services are the ping checkboxes; ones missing from the page are skipped
var services = []string{
	`input[name="chk_weblogscom"]`,
	`input[name="chk_blogs"]`,
	`input[name="chk_feedburner"]`,
	`input[name="chk_newsgator"]`,
	`input[name="chk_myyahoo"]`,
	`input[name="chk_pubsubcom"]`,
	`input[name="chk_blogdigger"]`,
	`input[name="chk_weblogalot"]`,
	`input[name="chk_newsisfree"]`,
	`input[name="chk_topicexchange"]`,
	`input[name="chk_google"]`,
	`input[name="chk_tailrank"]`,
	`input[name="chk_skygrid"]`,
	`input[name="chk_collecta"]`,
	`input[name="chk_superfeedr"]`,
}

var successPhrases = []string{"Pinging complete", "Ping-o-Matic is on the case", "Thanks for pinging"}
