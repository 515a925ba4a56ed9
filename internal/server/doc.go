// Package server provides HTTP routing, middleware, and the in-memory stub backend used by `liftlog serve`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method-qualified patterns.
//
// # Stub Backend
//
// [LiftHandler] implements the three endpoints the client talks to:
//   - GET /lifts returns every stored lift as a JSON array, in insertion order
//   - POST /log_lift validates a JSON lift, assigns a UUID and returns it with 201
//   - POST /upload_video streams a multipart body, checks the video part's type and records its size
//
// Everything lives in a [LiftStore] held in memory; nothing survives a restart.
// No video analysis happens: uploads with enableAI=true are only marked "queued".
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
