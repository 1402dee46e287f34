// Package server provides HTTP routing, middleware, and the webhook surface
// for the task bridge.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Webhook Handler
//
// [WebhookHandler] receives Todoist item events. Each request is verified
// against the configured client secret (HMAC-SHA256 over the raw body,
// compared to the X-Todoist-Hmac-Sha256 header) before the event is mirrored
// into Notion. Events the bridge does not mirror (deletions, unknown names)
// are acknowledged without action so Todoist does not retry them.
//
// # OAuth Callback Handler
//
// OAuthHandler implements the OAuth2 authorization code callback flow used by
// the auth command to obtain a Todoist token.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
