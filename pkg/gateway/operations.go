package gateway

import (
	"context"

	v1 "github.com/byxorna/tinyhouse/pkg/types/v1"
)

const viewerFields = `id token avatar hasWallet didRequest`

const (
	AuthURLQuery = `query AuthUrl {
  authUrl
}`

	LogInMutation = `mutation LogIn($input: LogInInput) {
  logIn(input: $input) { ` + viewerFields + ` }
}`

	LogOutMutation = `mutation LogOut {
  logOut { ` + viewerFields + ` }
}`

	ListingsQuery = `query Listings($location: String, $filter: ListingsFilter!, $limit: Int!, $page: Int!) {
  listings(location: $location, filter: $filter, limit: $limit, page: $page) {
    region
    total
    result { id title image address price numOfGuests }
  }
}`

	ListingQuery = `query Listing($id: ID!, $bookingsPage: Int!, $limit: Int!) {
  listing(id: $id) {
    id title description image
    host { id name avatar hasWallet }
    type address city
    bookings(limit: $limit, page: $bookingsPage) {
      total
      result { id tenant { id name avatar } checkIn checkOut }
    }
    bookingsIndex price numOfGuests
  }
}`

	UserQuery = `query User($id: ID!, $bookingsPage: Int!, $listingsPage: Int!, $limit: Int!) {
  user(id: $id) {
    id name avatar contact hasWallet income
    bookings(limit: $limit, page: $bookingsPage) {
      total
      result {
        id
        listing { id title image address price numOfGuests }
        checkIn checkOut
      }
    }
    listings(limit: $limit, page: $listingsPage) {
      total
      result { id title image address price numOfGuests }
    }
  }
}`

	ConnectStripeMutation = `mutation ConnectStripe($input: ConnectStripeInput!) {
  connectStripe(input: $input) { hasWallet }
}`

	DisconnectStripeMutation = `mutation DisconnectStripe {
  disconnectStripe { hasWallet }
}`

	HostListingMutation = `mutation HostListing($input: HostListingInput!) {
  hostListing(input: $input) { id }
}`

	CreateBookingMutation = `mutation CreateBooking($input: CreateBookingInput!) {
  createBooking(input: $input) { id }
}`
)

func AuthURL(ctx context.Context, ex Executor) (string, error) {
	var data struct {
		AuthURL string `json:"authUrl"`
	}
	err := ex.Execute(ctx, Request{Operation: "AuthUrl", Query: AuthURLQuery, Policy: NetworkOnly}, &data)
	return data.AuthURL, err
}

// LogIn exchanges code for a session. An empty code asks the server to
// resume the session named by the current token.
func LogIn(ctx context.Context, ex Executor, code string) (v1.Viewer, error) {
	vars := map[string]interface{}{}
	if code != "" {
		vars["input"] = map[string]interface{}{"code": code}
	}
	var data struct {
		LogIn v1.Viewer `json:"logIn"`
	}
	err := ex.Execute(ctx, Request{Operation: "LogIn", Query: LogInMutation, Variables: vars}, &data)
	return data.LogIn, err
}

func LogOut(ctx context.Context, ex Executor) (v1.Viewer, error) {
	var data struct {
		LogOut v1.Viewer `json:"logOut"`
	}
	err := ex.Execute(ctx, Request{Operation: "LogOut", Query: LogOutMutation}, &data)
	return data.LogOut, err
}

// ConnectStripe links the viewer's Stripe account using the code from the
// Stripe consent page and reports whether the viewer now has a wallet
func ConnectStripe(ctx context.Context, ex Executor, code string) (bool, error) {
	var data struct {
		ConnectStripe struct {
			HasWallet bool `json:"hasWallet"`
		} `json:"connectStripe"`
	}
	vars := map[string]interface{}{"input": map[string]interface{}{"code": code}}
	err := ex.Execute(ctx, Request{Operation: "ConnectStripe", Query: ConnectStripeMutation, Variables: vars}, &data)
	return data.ConnectStripe.HasWallet, err
}

func DisconnectStripe(ctx context.Context, ex Executor) (bool, error) {
	var data struct {
		DisconnectStripe struct {
			HasWallet bool `json:"hasWallet"`
		} `json:"disconnectStripe"`
	}
	err := ex.Execute(ctx, Request{Operation: "DisconnectStripe", Query: DisconnectStripeMutation}, &data)
	return data.DisconnectStripe.HasWallet, err
}

// ListingsVariables selects one page of a listings search
type ListingsVariables struct {
	Location string
	Filter   v1.ListingsFilter
	Limit    int
	Page     int
}

func (v ListingsVariables) toMap() map[string]interface{} {
	vars := map[string]interface{}{
		"filter": v.Filter,
		"limit":  v.Limit,
		"page":   v.Page,
	}
	if v.Location != "" {
		vars["location"] = v.Location
	}
	return vars
}

func Listings(ctx context.Context, ex Executor, vars ListingsVariables, policy Policy) (v1.ListingsPage, error) {
	var data struct {
		Listings v1.ListingsPage `json:"listings"`
	}
	err := ex.Execute(ctx, Request{Operation: "Listings", Query: ListingsQuery, Variables: vars.toMap(), Policy: policy}, &data)
	return data.Listings, err
}

func Listing(ctx context.Context, ex Executor, id string, bookingsPage, limit int, policy Policy) (v1.Listing, error) {
	var data struct {
		Listing v1.Listing `json:"listing"`
	}
	vars := map[string]interface{}{
		"id":           id,
		"bookingsPage": bookingsPage,
		"limit":        limit,
	}
	err := ex.Execute(ctx, Request{Operation: "Listing", Query: ListingQuery, Variables: vars, Policy: policy}, &data)
	return data.Listing, err
}

func User(ctx context.Context, ex Executor, id string, bookingsPage, listingsPage, limit int, policy Policy) (v1.User, error) {
	var data struct {
		User v1.User `json:"user"`
	}
	vars := map[string]interface{}{
		"id":           id,
		"bookingsPage": bookingsPage,
		"listingsPage": listingsPage,
		"limit":        limit,
	}
	err := ex.Execute(ctx, Request{Operation: "User", Query: UserQuery, Variables: vars, Policy: policy}, &data)
	return data.User, err
}

// HostListing creates a listing and returns its id
func HostListing(ctx context.Context, ex Executor, input v1.HostListingInput) (string, error) {
	var data struct {
		HostListing struct {
			ID string `json:"id"`
		} `json:"hostListing"`
	}
	vars := map[string]interface{}{"input": input}
	err := ex.Execute(ctx, Request{Operation: "HostListing", Query: HostListingMutation, Variables: vars}, &data)
	return data.HostListing.ID, err
}

// CreateBooking books a listing and returns the booking id
func CreateBooking(ctx context.Context, ex Executor, input v1.CreateBookingInput) (string, error) {
	var data struct {
		CreateBooking struct {
			ID string `json:"id"`
		} `json:"createBooking"`
	}
	vars := map[string]interface{}{"input": input}
	err := ex.Execute(ctx, Request{Operation: "CreateBooking", Query: CreateBookingMutation, Variables: vars}, &data)
	return data.CreateBooking.ID, err
}
