package rules

import (
	"context"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path"
	"strconv"
	"strings"

	"github.com/dmitrymomot/formguard"
	"github.com/dmitrymomot/formguard/pkg/async"
	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/message"
)

// File returns the upload rules. They only check file controls, pass when
// no file is selected, and require every selected file to satisfy them.
// Image dimension rules decode the image header asynchronously; files that
// cannot be read or decoded pass.
func File() formguard.RuleSet {
	return formguard.RuleSet{
		{
			Name: "ext",
			Validate: eachFile(func(f form.File, p []string) bool {
				ext := strings.ToLower(path.Ext(f.Name))
				for _, allowed := range p {
					allowed = strings.ToLower(strings.TrimSpace(allowed))
					if !strings.HasPrefix(allowed, ".") {
						allowed = "." + allowed
					}
					if ext != "" && ext == allowed {
						return true
					}
				}
				return false
			}),
			Message: "File extension must be one of: {allowed}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{"allowed": message.List(raws(rc.Params))}
			},
		},
		{
			Name: "mimes",
			Validate: eachFile(func(f form.File, p []string) bool {
				return containsString(p, f.MIME)
			}),
			Message: "File type must be one of: {allowed}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				return map[string]any{"allowed": message.List(raws(rc.Params))}
			},
		},
		{
			Name: "maxSize",
			Validate: eachFile(func(f form.File, p []string) bool {
				max, ok := leadingInt(first(p))
				return !ok || f.Size <= max
			}),
			Message: "File size must not exceed {size}.",
			Format: func(rc *formguard.RuleContext) map[string]any {
				max, _ := leadingInt(rawAt(rc, 0))
				return map[string]any{"size": message.FileSize(max)}
			},
		},
		{
			Name:          "minWidth",
			ValidateAsync: eachImage(func(w, _, limit int) bool { return w >= limit }),
			Message:       "Image width must be at least {width}px.",
			FormatNames:   []string{"width"},
		},
		{
			Name:          "minHeight",
			ValidateAsync: eachImage(func(_, h, limit int) bool { return h >= limit }),
			Message:       "Image height must be at least {height}px.",
			FormatNames:   []string{"height"},
		},
		{
			Name:          "maxWidth",
			ValidateAsync: eachImage(func(w, _, limit int) bool { return w <= limit }),
			Message:       "Image width must not exceed {width}px.",
			FormatNames:   []string{"width"},
		},
		{
			Name:          "maxHeight",
			ValidateAsync: eachImage(func(_, h, limit int) bool { return h <= limit }),
			Message:       "Image height must not exceed {height}px.",
			FormatNames:   []string{"height"},
		},
	}
}

func eachFile(ok func(f form.File, p []string) bool) formguard.Predicate {
	return func(rc *formguard.RuleContext) (formguard.Outcome, error) {
		if rc.Type != form.TypeFile || rc.Value.Kind() != form.KindFiles {
			return formguard.Pass(), nil
		}
		p := raws(rc.Params)
		for _, f := range rc.Value.Files() {
			if !ok(f, p) {
				return formguard.Fail(), nil
			}
		}
		return formguard.Pass(), nil
	}
}

func eachImage(ok func(w, h, limit int) bool) formguard.AsyncPredicate {
	return func(ctx context.Context, rc *formguard.RuleContext) *async.Future[formguard.Outcome] {
		if rc.Type != form.TypeFile || rc.Value.Kind() != form.KindFiles {
			return async.Resolve(formguard.Pass())
		}
		limit, valid := leadingInt(rawAt(rc, 0))
		if !valid {
			return async.Resolve(formguard.Pass())
		}

		files := rc.Value.Files()
		return async.Go(ctx, func(ctx context.Context) (formguard.Outcome, error) {
			for _, f := range files {
				if err := ctx.Err(); err != nil {
					return formguard.Outcome{}, err
				}
				w, h, decoded := imageSize(f)
				if decoded && !ok(w, h, int(limit)) {
					return formguard.Fail(), nil
				}
			}
			return formguard.Pass(), nil
		})
	}
}

// imageSize decodes the image header of f.
func imageSize(f form.File) (width, height int, ok bool) {
	if f.Open == nil {
		return 0, 0, false
	}
	r, err := f.Open()
	if err != nil {
		return 0, 0, false
	}
	defer r.Close()

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

// leadingInt parses the leading decimal digits of s, so "2048kb" is 2048.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func first(p []string) string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}
