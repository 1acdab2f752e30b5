// Package marklog renders structured log events as styled console lines.
//
// Each level has a Profile holding an output template such as
//
//	[{Timestamp:HH:mm:ss} {Level}] {Category}: {Message}{NewLine}{Exception}
//
// The template is parsed once, compiled into a cached pipeline of renderers
// and run against every event at that level. Renderers append markup
// (bracket style tags, see package markup) to a pooled buffer; the finished
// line is rendered to ANSI for terminals, or stripped to plain text, and
// committed to the output either synchronously or through a background
// writer that preserves event order.
//
// # Design overview
//
//   - Construction-time setup: themes, profiles, category level overrides
//     and the colour profile are resolved once when the Provider is built.
//     Loggers resolve their effective minimum level once, from the longest
//     matching category prefix.
//   - Templates: placeholders are "{Key[,Width][:Format]}". "{{" and "}}"
//     are literal braces. Unknown keys are written verbatim.
//   - Values: message arguments are formatted and styled through each
//     profile's formatting.Table (per-value style, per-type style, default).
//   - Scopes: ambient values live in context.Context and are rendered
//     innermost first by {Scopes}.
//   - Margins: {Margin=N}, {Margin+N} and {Margin-N} indent every line that
//     follows a line break. Each event renders against its own copy of the
//     margin; the value an event ends with carries over to the next one.
//
// # Usage
//
//	provider := marklog.New(os.Stdout, marklog.DefaultOptions())
//	defer provider.Close()
//	log := provider.Logger("Checkout.Payments")
//	log.Info(ctx, "charged {Amount:N2} to {Customer}", 42.5, "alice")
//
// NewFromEnv builds a provider from MARKLOG_* environment variables and the
// config package loads the same settings from YAML or TOML files.
package marklog
