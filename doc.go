// Package sessionreel reconciles screen-recording sessions out of
// independently-uploaded artifacts.
//
// A session is identified by its start instant, rendered as
// "YYYY-MM-DD HH-MM-SS". Each recording produces up to three artifacts
// that are uploaded on their own schedules: a video file, a metadata
// document, and an annotation log. They land in an object store under
// "<username>/<category>/<identifier>.<ext>", and nothing guarantees all
// three arrive. sessionreel's job is to stitch whatever did arrive back
// into coherent, viewable sessions.
//
// Architecture:
//
//   - **Narrow storage port**: the engine consumes core.ObjectStore
//     (list, get, put, delete, presign) and nothing else. The S3 adapter
//     is the production implementation; an in-memory adapter backs the
//     tests.
//   - **Metadata is the universe**: a session exists if and only if its
//     metadata document does. Orphan videos are invisible to the index.
//   - **Local fallback**: when a session's video never finished
//     uploading, the engine scans configured local directories for a
//     recording whose timestamp lands near the session's start and
//     serves that file instead.
//   - **Failure isolation**: one broken session never takes down the
//     index; it is logged and skipped.
//
// Usage:
//
//	cfg, err := sessionreel.LoadConfig(sessionreel.DefaultConfigPath())
//	svc, err := sessionreel.New(ctx, cfg)
//
//	sessions, err := svc.BuildIndex(ctx, "gopher")
//
//	err = svc.AppendAnnotation(ctx, "gopher", sessions[0].ID,
//		sessionreel.AnnotationEntry{Note: "interesting bit", Timestamp: now})
package sessionreel
