package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/opencamp-hq/backend/stripe"
)

func testServer(t *testing.T) *httptest.Server {
	service, err := stripe.NewService(&stripe.Config{
		APIKey:        "sk_test_dummy",
		WebhookSecret: "whsec_test_secret",
	}, nil, nil)
	qt.Assert(t, err, qt.IsNil)

	a := New(&Config{
		Host:      "127.0.0.1",
		Port:      0,
		Stripe:    service,
		WebAppURL: "http://localhost:3000",
	})
	srv := httptest.NewServer(a.initRouter())
	t.Cleanup(srv.Close)
	return srv
}

func errorCode(c *qt.C, body io.Reader) int {
	var decoded struct {
		Code int `json:"code"`
	}
	c.Assert(json.NewDecoder(body).Decode(&decoded), qt.IsNil)
	return decoded.Code
}

func TestWebhookMissingSignature(t *testing.T) {
	c := qt.New(t)
	srv := testServer(t)

	resp, err := http.Post(srv.URL+stripeWebhookEndpoint, "application/json",
		strings.NewReader(`{"id":"evt_1","object":"event"}`))
	c.Assert(err, qt.IsNil)
	defer func() {
		c.Assert(resp.Body.Close(), qt.IsNil)
	}()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, resp.Body), qt.Equals, 40003)
}

func TestWebhookInvalidSignature(t *testing.T) {
	c := qt.New(t)
	srv := testServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+stripeWebhookEndpoint,
		strings.NewReader(`{"id":"evt_1","object":"event"}`))
	c.Assert(err, qt.IsNil)
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	resp, err := http.DefaultClient.Do(req)
	c.Assert(err, qt.IsNil)
	defer func() {
		c.Assert(resp.Body.Close(), qt.IsNil)
	}()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, resp.Body), qt.Equals, 40004)
}

func TestWebhookMethodNotAllowed(t *testing.T) {
	c := qt.New(t)
	srv := testServer(t)

	resp, err := http.Get(srv.URL + stripeWebhookEndpoint)
	c.Assert(err, qt.IsNil)
	defer func() {
		c.Assert(resp.Body.Close(), qt.IsNil)
	}()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusMethodNotAllowed)
}

func TestCancelBookingBadRequest(t *testing.T) {
	c := qt.New(t)
	srv := testServer(t)

	// malformed body
	resp, err := http.Post(srv.URL+bookingsCancelEndpoint, "application/json",
		strings.NewReader("not json"))
	c.Assert(err, qt.IsNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, resp.Body), qt.Equals, 40001)
	c.Assert(resp.Body.Close(), qt.IsNil)

	// zero references
	body, err := json.Marshal(&CancelBookingRequest{})
	c.Assert(err, qt.IsNil)
	resp, err = http.Post(srv.URL+bookingsCancelEndpoint, "application/json",
		bytes.NewReader(body))
	c.Assert(err, qt.IsNil)
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, resp.Body), qt.Equals, 40006)
	c.Assert(resp.Body.Close(), qt.IsNil)
}

func TestCheckoutBadRequest(t *testing.T) {
	c := qt.New(t)
	srv := testServer(t)

	body, err := json.Marshal(&CheckoutRequest{})
	c.Assert(err, qt.IsNil)
	resp, err := http.Post(srv.URL+bookingsCheckoutEndpoint, "application/json",
		bytes.NewReader(body))
	c.Assert(err, qt.IsNil)
	defer func() {
		c.Assert(resp.Body.Close(), qt.IsNil)
	}()
	c.Assert(resp.StatusCode, qt.Equals, http.StatusBadRequest)
	c.Assert(errorCode(c, resp.Body), qt.Equals, 40006)
}
