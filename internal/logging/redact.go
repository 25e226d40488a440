package logging

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// dataURIPattern matches inline images such as the stored photo.
var dataURIPattern = regexp.MustCompile(`^data:[a-z]+/[a-z0-9.+-]+;base64,`)

// DefaultRedactOptions returns the masq options applied to every handler.
// Photo payloads are large and private, so they never reach a log line.
func DefaultRedactOptions() []masq.Option {
	return []masq.Option{
		masq.WithFieldName("photo"),
		masq.WithFieldName("password"),
		masq.WithFieldName("secret"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(dataURIPattern),
	}
}

// NewReplaceAttr creates a ReplaceAttr function for slog.HandlerOptions
// that redacts sensitive data.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	allOpts := append(DefaultRedactOptions(), opts...)
	return masq.New(allOpts...)
}

// redactingHandler applies a ReplaceAttr function to handlers that have no
// option for it, such as the charm pretty printer.
type redactingHandler struct {
	slog.Handler
	replace func(groups []string, a slog.Attr) slog.Attr
	groups  []string
}

func (h redactingHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replace(h.groups, a))
		return true
	})
	return h.Handler.Handle(ctx, out)
}

func (h redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	replaced := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		replaced[i] = h.replace(h.groups, a)
	}
	return redactingHandler{Handler: h.Handler.WithAttrs(replaced), replace: h.replace, groups: h.groups}
}

func (h redactingHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)
	return redactingHandler{Handler: h.Handler.WithGroup(name), replace: h.replace, groups: groups}
}
