// Package email provides the Postmark-backed email delivery service for the
// notification dispatcher. It implements notify.Service: each dispatched
// request becomes one transactional email to the configured recipient
// address, tagged with the notification level.
//
//	svc, err := email.NewService(cfg)
//	if err != nil { ... }
//	registry.RegisterService(svc)
package email
