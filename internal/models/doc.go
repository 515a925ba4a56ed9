// Package models defines the domain types shared by the liftlog client, CLI and stub backend.
//
//   - [Lift] : a single recorded performance (type, weight, reps, date) as exchanged with the API
//   - [LiftType] : one of squat, bench or deadlift
//   - [LiftID] : backend-assigned identifier, accepted as a JSON number or string
//   - [VideoSelection] : a video file chosen for upload, transient until the upload settles
//   - [History] : the cached lift list with dashboard statistics
package models
