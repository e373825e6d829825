// Package services contains the application services of the story client.
//
// The Orchestrator decides, for every submission, whether a story is committed
// remotely, queued locally for a later sync, or rejected with a classified
// error. BookmarkService, StoryService, SyncService and AuthService cover the
// rest of the user actions. Every service reports failures as *common.Error
// so the presentation layer can branch on the Kind and show the Message.
package services
