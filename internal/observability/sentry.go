package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

var active bool

// InitSentry enables error capture when a DSN is configured. With an empty
// DSN the package stays inert and the returned flush func is a no-op, so
// callers never need to branch on whether Sentry is on.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
	})
	if err != nil {
		return func() {}, err
	}

	active = true
	return func() { sentry.Flush(flushTimeout) }, nil
}

// CaptureErr reports an unexpected error. Nil errors and a disabled client
// are ignored.
func CaptureErr(err error) {
	if err == nil || !active {
		return
	}
	sentry.CaptureException(err)
}
