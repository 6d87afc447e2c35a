// Package model defines the core data structures used throughout
// archive-downloader.
//
// # VideoLink
//
// A VideoLink is the absolute URL produced by link discovery. It is a plain
// string; duplicates are allowed.
//
// # DownloadTask
//
// DownloadTask pairs a link with its destination file:
//
//	task := model.NewDownloadTask(link, "/videos")
//	fmt.Println(task.Path) // "/videos/" + decoded basename of link
//
// # Outcome
//
// Outcome records how a task ended: saved, skipped, forbidden or failed.
package model
