// Package app contains the application service layer: it orchestrates
// repository mutations and triggers best-effort notifications after a
// mutation succeeds. Notification publishing never fails a request.
package app
