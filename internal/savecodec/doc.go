// Package savecodec converts between the persisted save record and
// domain.SaveData.
//
// The record is JSON with a top-level version tag. Records written before
// the tag existed are classified structurally and brought forward through
// one migration per version step:
//
//	v1  single-patient records scored in stars (0..3)
//	v2  dual-patient records scored in wrong answers (0..4), untagged
//	v3  v2 plus an explicit "version": 3
//
// Decode never fails. Empty, unparseable or structurally incomplete input
// decodes to a fresh save and the Outcome says why. Inside a well-formed
// record, a player or chapter entry with a mistyped field is skipped on its
// own. Records tagged with a version newer than this build are decoded but
// reported read-only.
package savecodec
