// Package tasks implements the liftlog view/state controller and the request flows it drives.
//
// # Controller
//
// [Controller] owns a [State] with one [Flow] (status + message) per request flow:
// history, log-lift and upload. Every user action or request completion is an [Event]
// passed through the single [Controller.Apply] update function, which mutates the state
// and returns at most one [Effect] describing the request to issue next.
//
// Each flow moves Idle → Pending → Succeeded|Failed. While a flow is pending, further
// submissions for it are ignored, so at most one request per flow is ever outstanding.
// Flows are independent except that a successful lift submission re-triggers the history fetch.
//
// # Effects
//
// [Perform] executes an [Effect] against a [services.LiftService] and returns the
// completion [Event]. The TUI runs it inside a bubbletea command; the CLI calls it directly.
//
// # Bulk Import
//
// [BulkImport] submits CSV rows one at a time through the log-lift endpoint,
// throttled by a [rate.Limiter], reporting [ProgressUpdate] values on a non-blocking channel.
package tasks
