// Package webhook provides the webhook delivery service for the
// notification dispatcher. It implements notify.Service: each dispatched
// request is POSTed as a JSON payload to the configured endpoint, signed
// with HMAC-SHA256 so receivers can authenticate it.
//
// The service performs a single delivery attempt per dispatch; the
// dispatcher reports failures as data and retry policy is left to the
// operator of the receiving endpoint.
package webhook
