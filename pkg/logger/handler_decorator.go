package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor derives an attribute from a record context.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type formKey struct{}

// ContextWithForm tags ctx with a form identifier picked up by FormExtractor.
func ContextWithForm(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, formKey{}, id)
}

// FormExtractor adds the "form" attribute set by ContextWithForm.
func FormExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(formKey{}).(string); ok && id != "" {
		return Form(id), true
	}
	return slog.Attr{}, false
}

// contextHandler appends extracted attributes to every record.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
