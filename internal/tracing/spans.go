package tracing

// Span names.
const (
	SpanTransition = "variant.transition"
	SpanReload     = "config.reload"
)

// Span attribute keys.
const (
	AttrViewID       = "view.id"
	AttrViewName     = "view.name"
	AttrVariantFrom  = "variant.from"
	AttrVariantTo    = "variant.to"
	AttrRestored     = "variant.restored"
	AttrContextToken = "context.token"
	AttrScreenWidth  = "context.screen_width"

	AttrConfigPath  = "config.path"
	AttrConfigViews = "config.views"
)
