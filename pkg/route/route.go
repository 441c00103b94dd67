package route

import (
	"net/url"
	"strings"
)

type Kind int

const (
	NotFound Kind = iota
	HomeKind
	ListingsKind
	ListingKind
	UserKind
	LoginKind
	HostKind
	StripeKind
)

func (k Kind) String() string {
	return map[Kind]string{
		NotFound:     "not found",
		HomeKind:     "home",
		ListingsKind: "listings",
		ListingKind:  "listing",
		UserKind:     "user",
		LoginKind:    "login",
		HostKind:     "host",
		StripeKind:   "stripe",
	}[k]
}

const (
	CodeParam        = "code"
	StripeErrorParam = "stripe_error"
)

// Route is a navigation target. Param is the location for listings and the
// id for a listing or user.
type Route struct {
	Kind  Kind
	Param string
	Query url.Values
}

func Home() Route                    { return Route{Kind: HomeKind} }
func Listings(location string) Route { return Route{Kind: ListingsKind, Param: location} }
func Listing(id string) Route        { return Route{Kind: ListingKind, Param: id} }
func User(id string) Route           { return Route{Kind: UserKind, Param: id} }
func Login() Route                   { return Route{Kind: LoginKind} }
func Host() Route                    { return Route{Kind: HostKind} }
func LoginWithCode(code string) Route {
	return Route{Kind: LoginKind, Query: url.Values{CodeParam: []string{code}}}
}

// Stripe finishes connecting a wallet with the code Stripe handed back
func Stripe(code string) Route {
	return Route{Kind: StripeKind, Query: url.Values{CodeParam: []string{code}}}
}

// UserWithStripeError is the profile a failed wallet connection returns to
func UserWithStripeError(id string) Route {
	return Route{Kind: UserKind, Param: id, Query: url.Values{StripeErrorParam: []string{"true"}}}
}

// Code is the one-time authorization code, if the route carries one
func (r Route) Code() string { return r.Query.Get(CodeParam) }

// StripeError reports whether the wallet connection flow bounced back with an error
func (r Route) StripeError() bool { return r.Query.Get(StripeErrorParam) != "" }

func (r Route) Path() string {
	switch r.Kind {
	case HomeKind:
		return "/"
	case ListingsKind:
		if r.Param == "" {
			return "/listings"
		}
		return "/listings/" + url.PathEscape(r.Param)
	case ListingKind:
		return "/listing/" + url.PathEscape(r.Param)
	case UserKind:
		return "/user/" + url.PathEscape(r.Param)
	case LoginKind:
		return "/login"
	case HostKind:
		return "/host"
	case StripeKind:
		return "/stripe"
	}
	return "/404"
}

func (r Route) String() string {
	if len(r.Query) == 0 {
		return r.Path()
	}
	return r.Path() + "?" + r.Query.Encode()
}

// Equal compares kind, param and query
func (r Route) Equal(o Route) bool {
	return r.String() == o.String()
}

// Parse reads a path with an optional query string. Anything unrecognized
// parses as NotFound.
func Parse(s string) Route {
	u, err := url.Parse(s)
	if err != nil {
		return Route{Kind: NotFound}
	}

	q := u.Query()
	if len(q) == 0 {
		q = nil
	}

	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	if len(segments) == 1 && segments[0] == "" {
		return Route{Kind: HomeKind, Query: q}
	}

	param := ""
	if len(segments) == 2 {
		param, err = url.PathUnescape(segments[1])
		if err != nil {
			return Route{Kind: NotFound}
		}
	}

	switch {
	case segments[0] == "listings" && len(segments) <= 2:
		return Route{Kind: ListingsKind, Param: param, Query: q}
	case segments[0] == "listing" && len(segments) == 2 && param != "":
		return Route{Kind: ListingKind, Param: param, Query: q}
	case segments[0] == "user" && len(segments) == 2 && param != "":
		return Route{Kind: UserKind, Param: param, Query: q}
	case segments[0] == "login" && len(segments) == 1:
		return Route{Kind: LoginKind, Query: q}
	case segments[0] == "host" && len(segments) == 1:
		return Route{Kind: HostKind, Query: q}
	case segments[0] == "stripe" && len(segments) == 1:
		return Route{Kind: StripeKind, Query: q}
	}
	return Route{Kind: NotFound}
}
