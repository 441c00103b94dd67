package route

import "testing"

func TestPathFormatting(t *testing.T) {
	testcases := map[string]Route{
		"/":                           Home(),
		"/listings/Toronto":           Listings("Toronto"),
		"/listings/San%20Juan":        Listings("San Juan"),
		"/listings/a%2Fb":             Listings("a/b"),
		"/listings":                   Listings(""),
		"/listing/1234":               Listing("1234"),
		"/user/324":                   User("324"),
		"/login":                      Login(),
		"/login?code=1234":            LoginWithCode("1234"),
		"/host":                       Host(),
		"/stripe?code=ac_123":         Stripe("ac_123"),
		"/user/324?stripe_error=true": UserWithStripeError("324"),
	}
	for expected, r := range testcases {
		if actual := r.String(); actual != expected {
			t.Fatalf("expected %s but got %s", expected, actual)
		}
	}
}

func TestParse(t *testing.T) {
	testcases := map[string]Route{
		"/":                           Home(),
		"":                            Home(),
		"/listings/Toronto":           Listings("Toronto"),
		"/listings/San%20Juan":        Listings("San Juan"),
		"/listings/a%2Fb":             Listings("a/b"),
		"/listings":                   Listings(""),
		"/listing/1234":               Listing("1234"),
		"/user/324":                   User("324"),
		"/login":                      Login(),
		"/login?code=1234":            LoginWithCode("1234"),
		"/host":                       Host(),
		"/stripe?code=ac_123":         Stripe("ac_123"),
		"/user/324?stripe_error=true": UserWithStripeError("324"),
	}
	for input, expected := range testcases {
		if actual := Parse(input); !actual.Equal(expected) || actual.Kind != expected.Kind || actual.Param != expected.Param {
			t.Fatalf("expected %q to parse as %+v but got %+v", input, expected, actual)
		}
	}

	for _, bad := range []string{"/nope", "/listing", "/user/", "/listings/a/b", "/login/extra", "/stripe/ac_123"} {
		if r := Parse(bad); r.Kind != NotFound {
			t.Fatalf("expected %q to be not found but got %s", bad, r.Kind)
		}
	}
}

func TestQueryParams(t *testing.T) {
	r := Parse("/login?code=1234")
	if r.Code() != "1234" {
		t.Fatalf("expected code 1234 but got %q", r.Code())
	}
	if Parse("/login").Code() != "" {
		t.Fatal("expected no code")
	}
	if !Parse("/user/324?stripe_error=true").StripeError() {
		t.Fatal("expected stripe error flag")
	}
	if Parse("/user/324").StripeError() {
		t.Fatal("expected no stripe error flag")
	}
}
