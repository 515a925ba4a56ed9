// Package services implements the HTTP side of the liftlog client.
//
// # Raw API
//
// [APIService] issues GET, JSON POST and streamed multipart POST requests against the configured base URL
// and returns an [APIResponse] with the status, headers and body. It never interprets status codes.
//
// # Lift Service
//
// [LiftService] is the contract used by the TUI and CLI, one method per flow:
//   - FetchLifts : GET /lifts, JSON array of lifts
//   - LogLift : POST /log_lift, JSON {liftType, weight, reps, date}
//   - UploadVideo : POST /upload_video, multipart fields "video" and "enableAI"
//
// [LiftAPI] implements it over [APIService] with a per-call timeout.
//
// # Error Handling
//
// Errors fall into two classes, which the controller maps to different messages:
//   - [shared.ErrAPIRequest] : transport failure (connection refused, timeout, unreadable body)
//   - [shared.ErrUnexpectedStatus] : non-2xx response, returned as a [StatusError]
//
// Undecodable history bodies wrap [shared.ErrInvalidResponse].
package services
