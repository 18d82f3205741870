// Package cli implements the interactive stories client: a line-oriented
// REPL over the local cache and a terminal story viewer.
//
// Commands
//
//	help                          show available commands
//	sync                          refresh the first feed page
//	more                          fetch the next page from the checkpoint
//	syncall                       walk the whole feed
//	friends                       list friends, unseen first
//	newest                        list all stories, most recent first
//	liked                         list liked stories
//	view <user#> [story#]         watch a friend's stories
//	viewnew <#>                   watch from a position in the newest list
//	viewliked <#>                 watch from a position in the liked list
//	speed [fast|normal|slow]      show or change story duration
//	post <user_id> <url> [text]   publish a story
//	reset-seen                    mark every story unseen
//	exit | quit                   leave the program
//
// Inside the viewer each line is a command: n (next), p (previous),
// l (like), s or a blank space (pause/resume) and q (close).
package cli
