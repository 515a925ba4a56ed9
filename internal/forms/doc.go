// Package forms validates user input before any request is built.
//
// [ParseLift] turns the raw strings of the log form into a [models.Lift], rejecting
// input with a [ValidationError] that names the field and a [Reason].
//
// [DetectVideo] and [CheckVideoType] implement the client-side video type check:
// only mp4, avi, mov, wmv and webm files may be attached to an upload.
package forms
