// Package sites maps website keys to their publishing adapters.
package sites

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/auth"
	"github.com/ibeckermayer/syndicate/internal/sites/devto"
	"github.com/ibeckermayer/syndicate/internal/sites/diigo"
	"github.com/ibeckermayer/syndicate/internal/sites/hashnode"
	"github.com/ibeckermayer/syndicate/internal/sites/justpaste"
	"github.com/ibeckermayer/syndicate/internal/sites/linkedincomment"
	"github.com/ibeckermayer/syndicate/internal/sites/pastebin"
	"github.com/ibeckermayer/syndicate/internal/sites/phpbb"
	"github.com/ibeckermayer/syndicate/internal/sites/pingomatic"
	"github.com/ibeckermayer/syndicate/internal/sites/plurk"
	"github.com/ibeckermayer/syndicate/internal/sites/reddit"
	"github.com/ibeckermayer/syndicate/internal/sites/tumblr"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

// ErrUnknownSite is returned by New for keys nothing is registered under
var ErrUnknownSite = errors.New("unknown site")

// Kind says how an adapter reaches its site
type Kind string

const (
	KindBrowser Kind = "browser"
	KindAPI     Kind = "api"
)

// Group is the kind of backlink a site produces
type Group string

const (
	GroupArticle  Group = "article"
	GroupBookmark Group = "bookmark"
	GroupForum    Group = "forum"
	GroupPing     Group = "ping"
	GroupSocial   Group = "social"
	GroupPaste    Group = "paste"
)

// Info describes a registered site. LoginURL is set for sites that need
// `syndicate login` before publishing; LoginDone is the URL prefix reached
// once signed in.
type Info struct {
	Key       string
	Name      string
	Kind      Kind
	Group     Group
	LoginURL  string
	LoginDone string
}

// Env carries everything an adapter constructor may need
type Env struct {
	Deps    adapter.Deps
	Launch  web.Launcher
	Cookies *auth.CookieStore
	HTTP    web.HTTPOptions
	Comment linkedincomment.Services

	// Capture screenshots API results when set
	Capture web.Launcher

	// BaseURLs overrides API endpoints by site key
	BaseURLs map[string]string
}

func (e Env) api(key string) web.APIOptions {
	return web.APIOptions{
		BaseURL: e.BaseURLs[key],
		HTTP:    e.HTTP,
		Capture: e.Capture,
	}
}

// Factory builds an adapter for one publish
type Factory func(p adapter.Params, env Env) adapter.Publisher

type entry struct {
	info    Info
	factory Factory
}

var registry = map[string]entry{}

// Register adds a site. It panics on a duplicate key.
func Register(info Info, factory Factory) {
	key := normalize(info.Key)
	if _, ok := registry[key]; ok {
		panic("sites: duplicate registration of " + key)
	}
	info.Key = key
	registry[key] = entry{info: info, factory: factory}
}

// Lookup returns the Info registered under key
func Lookup(key string) (Info, bool) {
	e, ok := registry[normalize(key)]
	return e.info, ok
}

// List returns every registered site sorted by key
func List() []Info {
	out := make([]Info, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// New builds the adapter for p.Website.Site with env.Deps injected
func New(p adapter.Params, env Env) (adapter.Publisher, error) {
	e, ok := registry[normalize(p.Website.Site)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSite, p.Website.Site)
	}
	p.Deps = env.Deps
	return e.factory(p, env), nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func init() {
	Register(Info{Key: "pastebin", Name: pastebin.Name, Kind: KindAPI, Group: GroupPaste},
		func(p adapter.Params, env Env) adapter.Publisher { return pastebin.New(p, env.api("pastebin")) })
	Register(Info{Key: "devto", Name: devto.Name, Kind: KindAPI, Group: GroupArticle},
		func(p adapter.Params, env Env) adapter.Publisher { return devto.New(p, env.api("devto")) })
	Register(Info{Key: "hashnode", Name: hashnode.Name, Kind: KindAPI, Group: GroupArticle},
		func(p adapter.Params, env Env) adapter.Publisher { return hashnode.New(p, env.api("hashnode")) })
	Register(Info{Key: "tumblr", Name: tumblr.Name, Kind: KindAPI, Group: GroupSocial},
		func(p adapter.Params, env Env) adapter.Publisher { return tumblr.New(p, env.api("tumblr")) })
	Register(Info{Key: "plurk", Name: plurk.Name, Kind: KindAPI, Group: GroupSocial},
		func(p adapter.Params, env Env) adapter.Publisher { return plurk.New(p, env.api("plurk")) })

	Register(Info{Key: "pingomatic", Name: pingomatic.Name, Kind: KindBrowser, Group: GroupPing},
		func(p adapter.Params, env Env) adapter.Publisher { return pingomatic.New(p, env.Launch) })
	Register(Info{Key: "phpbb", Name: phpbb.Name, Kind: KindBrowser, Group: GroupForum},
		func(p adapter.Params, env Env) adapter.Publisher { return phpbb.New(p, env.Launch) })
	Register(Info{Key: "justpaste", Name: justpaste.Name, Kind: KindBrowser, Group: GroupArticle},
		func(p adapter.Params, env Env) adapter.Publisher { return justpaste.New(p, env.Launch) })
	Register(Info{
		Key: "diigo", Name: diigo.Name, Kind: KindBrowser, Group: GroupBookmark,
		LoginURL: diigo.LoginURL, LoginDone: diigo.DefaultBaseURL + "/",
	}, func(p adapter.Params, env Env) adapter.Publisher { return diigo.New(p, env.Launch, env.Cookies) })
	Register(Info{
		Key: "reddit", Name: reddit.Name, Kind: KindBrowser, Group: GroupSocial,
		LoginURL: reddit.LoginURL, LoginDone: "https://www.reddit.com/",
	}, func(p adapter.Params, env Env) adapter.Publisher { return reddit.New(p, env.Launch, env.Cookies) })

	Register(Info{Key: "linkedin-comment", Name: linkedincomment.Name, Kind: KindAPI, Group: GroupSocial},
		func(p adapter.Params, env Env) adapter.Publisher { return linkedincomment.New(p, env.Comment) })
}
