package api

import (
	"io"
	"net/http"

	"github.com/opencamp-hq/backend/errors"
	"github.com/opencamp-hq/backend/stripe"
)

// maxWebhookBodyBytes bounds the webhook request body, per the gateway's
// recommendation.
const maxWebhookBodyBytes = int64(65536)

// stripeWebhookHandler receives the payment gateway webhook events. The raw
// body is passed untouched to the signature verification; only verified
// events reach the handlers. Redelivered events are acknowledged without
// reprocessing.
func (a *API) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return
	}

	signature := r.Header.Get("Stripe-Signature")
	if signature == "" {
		errors.ErrMissingSignature.Write(w)
		return
	}

	if err := a.stripe.ProcessWebhookEvent(payload, signature); err != nil {
		switch stripe.ErrorCode(err) {
		case stripe.CodeWebhookValidation, stripe.CodeInvalidEvent:
			errors.ErrWebhookVerification.WithErr(err).Write(w)
		case stripe.CodeUserNotFound, stripe.CodeUserMissingEmail:
			// the gateway retries on non-2xx; a missing user or address is
			// permanent, so answer 400 and let the event die
			errors.ErrWebhookUserNotFound.Write(w)
		case stripe.CodeCampgroundNotFound:
			errors.ErrWebhookCampgroundNotFound.Write(w)
		default:
			errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		}
		return
	}

	httpWriteOK(w)
}
